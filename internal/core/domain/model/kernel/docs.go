// Package kernel contains shared value objects used across the domain model.
//
// The package provides:
//   - UUID: An immutable identifier value object wrapping github.com/google/uuid
//   - Money: A currency amount stored in integer cents to keep arithmetic exact
//
// Value objects in this package are immutable, validate themselves at
// construction time, and expose Validate methods for use when objects are
// reconstructed from persistence or other external sources.
package kernel
