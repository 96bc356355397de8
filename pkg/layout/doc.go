// Package layout describes where the pieces of an application image live.
//
// A Template holds the platform-specific relative directories. Resolving
// a template against an output root and an application name yields a
// Layout, an immutable value whose accessors are pure path joins. Nothing
// in this package touches the filesystem.
//
// Launcher configuration files must stay valid wherever the image is
// finally installed, so the layout also produces symbolic paths rooted at
// the $ROOTDIR token that the launcher expands at run time.
package layout
