// Package config provides component-level configuration loading, merging,
// and validation for httpbridge.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources override later ones for non-zero fields):
//  1. Environment variables (BRIDGE_ prefix)
//  2. Built-in defaults
//
// The main entry point is [GetComponentConfig]. Endpoint-level settings
// parsed from an address always take precedence over the component values
// loaded here.
package config
