// Package binding translates between the generic exchange model and the
// wire-level HTTP representation.
//
// A Binding is stateless once configured and is shared by every producer of
// an endpoint; the endpoint creates it lazily, exactly once. ToWire and
// FromWire perform no network I/O.
package binding
