// Package resources supplies the binary inputs of an image: the launcher
// template, the native support library and the default icon.
//
// Providers are layered. A user resource directory shadows the shared
// resource directory, which shadows the defaults embedded in the binary.
// The embedded set carries a portable launcher script and the default
// icon; the native library has to come from a resource directory.
package resources
