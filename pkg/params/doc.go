// Package params holds the typed build parameters an image is built from.
//
// Params are resolved once, before the image builder runs (see package
// config). The builder only reads typed fields. Secondary launchers are
// described by LauncherOverlay values that Merge applies to a copy of
// the primary parameters.
package params
