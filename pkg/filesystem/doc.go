// Package filesystem provides filesystem implementations for appimg.
//
// This package contains implementations of the types.FS interface,
// backed by the OS filesystem and by afero for tests.
package filesystem
