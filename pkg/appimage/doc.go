// Package appimage materializes an application image directory tree.
//
// A Builder is bound to one resolved layout. PrepareApplicationFiles
// first checks that the launcher template and native library can be
// opened, so a missing resource is reported before anything is written.
// It then creates the layout directories and writes the primary
// launcher, the native support library, every secondary launcher, the
// application resource sets and the icons, in that order. Each step runs
// synchronously and the first fatal error stops the build. Files already
// written stay on disk; deleting a partial image is left to the caller.
//
// An icon that fails validation is not fatal. It is reported through
// Result.IconError, or LauncherResult.IconError for a secondary launcher
// with its own icon, and no icon file is written for it.
package appimage
