// Package types defines the interfaces shared across appimg packages.
// The filesystem abstraction lives here so that the layout, resource and
// image packages can be exercised against an in-memory filesystem.
package types
