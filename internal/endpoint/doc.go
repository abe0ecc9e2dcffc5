// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package endpoint resolves logical addresses into endpoint configurations
// and turns them into producers and consumers.
//
// An address has the form scheme://host:port/path?query. Query keys are
// free-form configuration parameters bound through an explicit key table;
// resolution is all-or-nothing: every unrecognized key is collected and
// rejected in one pass, and partially specified option pairs (the worker
// pool min/max bounds) fail before any network resource is allocated.
//
// A Registry caches endpoints by normalized address. Each endpoint owns at
// most one Binding, created lazily under a mutex on first use.
package endpoint
