// Package config loads build configuration and resolves it into the typed
// parameters the image builder consumes.
//
// Configuration is layered with koanf, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file: appimg.toml, appimg.yaml or appimg.yml in the
//     working directory, or an explicit --config path
//  3. APPIMG_* environment variables; a double underscore separates
//     nesting levels, so APPIMG_APP__MAIN_JAR sets app.main_jar
//  4. command line overrides
//
// Relative paths in the project file are resolved against the directory
// of the file. Resolve applies the derived defaults (application name,
// identifier, scanned input sets) and validates secondary launchers.
package config
