package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/layout"
	"github.com/arthur-debert/appimg/pkg/params"
	"github.com/arthur-debert/appimg/pkg/resources"
	"github.com/arthur-debert/appimg/pkg/types"
)

// Build is a resolved configuration, ready for the image builder
type Build struct {
	Layout    layout.Layout
	Primary   params.Params
	Launchers []params.LauncherOverlay
	// ResourceDirs shadow the embedded resources, highest priority first
	ResourceDirs []string
}

// ResourceProvider layers the resource directories over the embedded
// resources.
func (b *Build) ResourceProvider(fsys types.FS) resources.Provider {
	providers := make([]resources.Provider, 0, len(b.ResourceDirs)+1)
	for _, dir := range b.ResourceDirs {
		providers = append(providers, resources.Dir(fsys, dir))
	}
	providers = append(providers, resources.Embedded())
	return resources.Layered(providers...)
}

// DefaultSharedResourceDir is consulted after the user resource directory
func DefaultSharedResourceDir() string {
	return filepath.Join(xdg.DataHome, "appimg", "resources")
}

// Resolve applies derived defaults, resolves relative paths against the
// config base directory, scans input directories and validates launchers.
func Resolve(cfg *Config, fsys types.FS) (*Build, error) {
	app := cfg.App

	tmpl, err := layout.Lookup(cfg.Output.Platform)
	if err != nil {
		return nil, err
	}

	if app.MainJar == "" && app.MainClass == "" && app.Module == "" {
		return nil, errors.New(errors.ErrConfigValid,
			"no entry point: set app.main_jar, app.main_class or app.module")
	}
	if app.IconSize < 0 {
		return nil, errors.Newf(errors.ErrConfigValid, "icon size must not be negative, got %d", app.IconSize)
	}

	name := app.Name
	if name == "" {
		name = params.DefaultAppName(mainClassOf(app), app.MainJar)
	}
	if err := validateName(name); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid application name").
			WithDetail("name", name)
	}

	identifier := app.Identifier
	if identifier == "" {
		identifier = mainClassOf(app)
	}
	if identifier == "" {
		identifier = name
	}

	sets, err := resolveInputs(cfg, fsys)
	if err != nil {
		return nil, err
	}

	primary := params.Params{
		AppName:      name,
		Version:      app.Version,
		Identifier:   identifier,
		MainJar:      app.MainJar,
		MainClass:    app.MainClass,
		Module:       app.Module,
		Classpath:    app.Classpath,
		Arguments:    app.Arguments,
		JavaOptions:  app.JavaOptions,
		Icon:         cfg.path(app.Icon),
		IconSize:     app.IconSize,
		AppResources: sets,
	}

	launchers, err := resolveLaunchers(cfg, fsys, name)
	if err != nil {
		return nil, err
	}

	var dirs []string
	if cfg.Resources.Dir != "" {
		dirs = append(dirs, cfg.path(cfg.Resources.Dir))
	}
	shared := cfg.Resources.SharedDir
	if shared == "" {
		shared = DefaultSharedResourceDir()
	}
	dirs = append(dirs, cfg.path(shared))

	return &Build{
		Layout:       tmpl.ResolveAt(cfg.path(cfg.Output.Dir), name),
		Primary:      primary,
		Launchers:    launchers,
		ResourceDirs: dirs,
	}, nil
}

func resolveInputs(cfg *Config, fsys types.FS) ([]*params.ResourceSet, error) {
	sets := make([]*params.ResourceSet, 0, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		if in.Dir == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "inputs[%d] has no dir", i)
		}
		dir := cfg.path(in.Dir)

		if len(in.Files) == 0 {
			set, err := params.ScanResourceSet(fsys, dir, in.Exclude)
			if err != nil {
				return nil, err
			}
			sets = append(sets, set)
			continue
		}

		for _, rel := range in.Files {
			if err := params.ValidateRelative(rel); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigValid, "inputs[%d]", i)
			}
		}
		sets = append(sets, &params.ResourceSet{BaseDir: dir, Files: in.Files})
	}
	return sets, nil
}

func resolveLaunchers(cfg *Config, fsys types.FS, appName string) ([]params.LauncherOverlay, error) {
	seen := map[string]bool{appName: true}
	overlays := make([]params.LauncherOverlay, 0, len(cfg.Launchers))

	for i, lc := range cfg.Launchers {
		if err := validateName(lc.Name); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "launchers[%d] has an invalid name", i).
				WithDetail("name", lc.Name)
		}
		if seen[lc.Name] {
			if lc.Name == appName {
				return nil, errors.Newf(errors.ErrConfigValid,
					"launcher %q has the same name as the application", lc.Name)
			}
			return nil, errors.Newf(errors.ErrConfigValid, "duplicate launcher %q", lc.Name)
		}
		seen[lc.Name] = true

		if lc.Icon != nil && *lc.Icon != "" {
			icon := cfg.path(*lc.Icon)
			lc.Icon = &icon
		}
		if lc.File != "" {
			lf, err := readLauncherFile(fsys, cfg.path(lc.File))
			if err != nil {
				return nil, err
			}
			lc = lc.withFile(lf)
		}

		overlays = append(overlays, params.LauncherOverlay{
			Name:        lc.Name,
			MainJar:     lc.MainJar,
			MainClass:   lc.MainClass,
			Module:      lc.Module,
			Arguments:   lc.Arguments,
			JavaOptions: lc.JavaOptions,
			Icon:        lc.Icon,
			Version:     lc.Version,
		})
	}
	return overlays, nil
}

// mainClassOf returns the main class, taking it from a module/class
// module reference when no main class is set.
func mainClassOf(app AppConfig) string {
	if app.MainClass != "" {
		return app.MainClass
	}
	if i := strings.Index(app.Module, "/"); i >= 0 {
		return app.Module[i+1:]
	}
	return ""
}

func validateName(name string) error {
	switch {
	case name == "":
		return errors.New(errors.ErrInvalidInput, "name is empty")
	case name == "." || name == "..":
		return errors.Newf(errors.ErrInvalidInput, "name %q is reserved", name)
	case strings.ContainsAny(name, `/\`):
		return errors.Newf(errors.ErrInvalidInput, "name %q contains a path separator", name)
	}
	return nil
}

// path resolves p against the config base directory
func (c *Config) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
