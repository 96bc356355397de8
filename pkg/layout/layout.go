package layout

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/appimg/pkg/errors"
)

// RootDirToken is expanded by the launcher to the image root at run time.
const RootDirToken = "$ROOTDIR"

// Platform family names accepted by Lookup
const (
	PlatformLinux = "linux"
)

// ConfigFileExt is appended to a launcher name to form its config file name
const ConfigFileExt = ".cfg"

// Template lists the directories of an image relative to its root
type Template struct {
	Platform           string
	Launchers          string
	App                string
	Runtime            string
	DLL                string
	DesktopIntegration string
	AppMods            string
}

// LinuxAppImage is the layout of a Linux application image
var LinuxAppImage = Template{
	Platform:           PlatformLinux,
	Launchers:          "bin",
	App:                filepath.Join("lib", "app"),
	Runtime:            filepath.Join("lib", "runtime"),
	DLL:                "lib",
	DesktopIntegration: "lib",
	AppMods:            filepath.Join("lib", "app", "mods"),
}

var templates = map[string]Template{
	PlatformLinux: LinuxAppImage,
}

// Lookup returns the template registered for a platform family
func Lookup(platform string) (Template, error) {
	t, ok := templates[platform]
	if !ok {
		return Template{}, errors.Newf(errors.ErrUnknownPlatform,
			"no image layout for platform %q", platform).
			WithDetail("known", Platforms())
	}
	return t, nil
}

// Platforms returns the registered platform names, sorted
func Platforms() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveAt binds the template to <outputRoot>/<appName>
func (t Template) ResolveAt(outputRoot, appName string) Layout {
	return Layout{
		outputRoot: outputRoot,
		appName:    appName,
		root:       filepath.Join(outputRoot, appName),
		tmpl:       t,
	}
}

// Resolve binds the Linux template to <outputRoot>/<appName>
func Resolve(outputRoot, appName string) Layout {
	return LinuxAppImage.ResolveAt(outputRoot, appName)
}

// Layout is the set of concrete directories of one application image.
// The zero value is not useful; use Resolve or Template.ResolveAt.
type Layout struct {
	outputRoot string
	appName    string
	root       string
	tmpl       Template
}

// Template returns the template the layout was resolved from
func (l Layout) Template() Template { return l.tmpl }

// OutputRoot returns the directory the image root was resolved in
func (l Layout) OutputRoot() string { return l.outputRoot }

// AppName returns the application name the layout was resolved for
func (l Layout) AppName() string { return l.appName }

// Root returns the image root
func (l Layout) Root() string { return l.root }

// LaunchersDirectory holds launcher executables
func (l Layout) LaunchersDirectory() string { return l.resolve(l.tmpl.Launchers) }

// AppDirectory holds application files and launcher config files
func (l Layout) AppDirectory() string { return l.resolve(l.tmpl.App) }

// RuntimeDirectory holds the bundled runtime
func (l Layout) RuntimeDirectory() string { return l.resolve(l.tmpl.Runtime) }

// DLLDirectory holds the native support library
func (l Layout) DLLDirectory() string { return l.resolve(l.tmpl.DLL) }

// DesktopIntegrationDirectory holds the icon
func (l Layout) DesktopIntegrationDirectory() string {
	return l.resolve(l.tmpl.DesktopIntegration)
}

// AppModsDirectory holds application modules
func (l Layout) AppModsDirectory() string { return l.resolve(l.tmpl.AppMods) }

// Roots returns the directories that must exist before any file is
// written, in creation order and without duplicates.
func (l Layout) Roots() []string {
	candidates := []string{
		l.AppDirectory(),
		l.RuntimeDirectory(),
		l.LaunchersDirectory(),
		l.DLLDirectory(),
		l.DesktopIntegrationDirectory(),
		l.AppModsDirectory(),
	}

	seen := make(map[string]bool, len(candidates))
	roots := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		roots = append(roots, dir)
	}
	return roots
}

// LauncherPath returns the executable path of the named launcher
func (l Layout) LauncherPath(name string) string {
	return filepath.Join(l.LaunchersDirectory(), name)
}

// ConfigPath returns the config file path of the named launcher
func (l Layout) ConfigPath(name string) string {
	return filepath.Join(l.AppDirectory(), name+ConfigFileExt)
}

// NativeLibraryPath returns where a native library named lib is placed
func (l Layout) NativeLibraryPath(lib string) string {
	return filepath.Join(l.DLLDirectory(), lib)
}

// IconPath returns the icon destination for an icon with extension ext
// (including the leading dot).
func (l Layout) IconPath(ext string) string {
	return l.LauncherIconPath(l.appName, ext)
}

// LauncherIconPath returns the icon destination of the named launcher
func (l Layout) LauncherIconPath(name, ext string) string {
	return filepath.Join(l.DesktopIntegrationDirectory(), name+ext)
}

// CfgAppDir is the app directory as seen from a launcher config file.
// It always ends with a separator so file names can be appended directly.
func (l Layout) CfgAppDir() string {
	return symbolic(l.tmpl.App) + string(filepath.Separator)
}

// CfgRuntimeDir is the runtime directory as seen from a launcher config file
func (l Layout) CfgRuntimeDir() string {
	return symbolic(l.tmpl.Runtime)
}

func (l Layout) resolve(rel string) string {
	return filepath.Join(l.root, rel)
}

func symbolic(rel string) string {
	return filepath.Join(RootDirToken, rel)
}
