package appimage

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/appimg/pkg/cfgfile"
	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/icon"
	"github.com/arthur-debert/appimg/pkg/layout"
	"github.com/arthur-debert/appimg/pkg/logging"
	"github.com/arthur-debert/appimg/pkg/params"
	"github.com/arthur-debert/appimg/pkg/resources"
	"github.com/arthur-debert/appimg/pkg/types"
	"github.com/rs/zerolog"
)

// Builder writes one application image
type Builder struct {
	fs        types.FS
	layout    layout.Layout
	resources resources.Provider
	config    cfgfile.Writer
	logger    zerolog.Logger
}

// New creates a builder for the given layout. Launcher configs are
// written with a cfgfile.FileWriter on the same filesystem unless
// WithConfigWriter replaces it.
func New(fs types.FS, l layout.Layout, res resources.Provider) *Builder {
	return &Builder{
		fs:        fs,
		layout:    l,
		resources: res,
		config:    cfgfile.NewFileWriter(fs, l),
		logger:    logging.GetLogger("appimage"),
	}
}

// WithConfigWriter replaces the launcher config writer
func (b *Builder) WithConfigWriter(w cfgfile.Writer) *Builder {
	b.config = w
	return b
}

// WithLogger replaces the builder's logger
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// Layout returns the layout the builder writes
func (b *Builder) Layout() layout.Layout {
	return b.layout
}

// requiredResources must all be available before anything is written
var requiredResources = []string{resources.LauncherTemplate, resources.NativeLibrary}

// PrepareApplicationFiles materializes the image for the primary
// parameters and one extra launcher per overlay. The returned Result is
// never nil and lists what was written, also when err is not nil.
//
// Missing launcher resources are reported before any directory is
// created. Any later failure leaves what was already written in place.
func (b *Builder) PrepareApplicationFiles(primary params.Params, launchers []params.LauncherOverlay) (*Result, error) {
	result := &Result{Root: b.layout.Root()}

	// Overlays merge onto this copy, never onto primary itself
	original := primary.Clone()
	secondary := make([]params.Params, len(launchers))
	for i, overlay := range launchers {
		secondary[i] = params.Merge(original, overlay)
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"resources", func() error { return resources.Require(b.resources, requiredResources...) }},
		{"roots", func() error { return b.ensureRoots(result) }},
		{"primary-launcher", func() error { return b.createLauncher(primary, result) }},
		{"native-library", func() error { return b.copyNativeLibrary(result) }},
		{"launchers", func() error {
			for _, p := range secondary {
				if err := b.createLauncher(p, result); err != nil {
					return err
				}
			}
			return nil
		}},
		{"application", func() error { return b.copyApplication(primary, result) }},
		{"icons", func() error { return b.copyIcons(primary, launchers, secondary, result) }},
	}

	for _, step := range steps {
		done := logging.StartStep(b.logger, step.name)
		err := step.run()
		done(&err)
		if err != nil {
			return result, err
		}
	}

	b.logger.Info().
		Str("root", result.Root).
		Strs("launchers", result.LauncherNames()).
		Int("files", len(result.Files)).
		Msg("Application image prepared")
	return result, nil
}

// ensureRoots creates every layout root and checks it is a writable
// directory, stopping at the first one that is not.
func (b *Builder) ensureRoots(result *Result) error {
	for _, dir := range b.layout.Roots() {
		if err := b.writableOutputDir(dir); err != nil {
			return err
		}
		result.Directories = append(result.Directories, dir)
	}
	return nil
}

func (b *Builder) writableOutputDir(dir string) error {
	if err := b.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirNotWritable, "cannot create output directory %s", dir).
			WithDetail("dir", dir)
	}
	info, err := b.fs.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirNotWritable, "cannot stat output directory %s", dir).
			WithDetail("dir", dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrDirNotWritable, "output path %s is not a directory", dir).
			WithDetail("dir", dir)
	}
	if err := b.fs.Writable(dir); err != nil {
		return errors.Wrapf(err, errors.ErrDirNotWritable, "cannot write to output directory %s", dir).
			WithDetail("dir", dir)
	}
	return nil
}

// createLauncher copies the launcher template and writes its config
func (b *Builder) createLauncher(p params.Params, result *Result) error {
	name := p.LauncherName()
	if err := validateLauncherName(name); err != nil {
		return err
	}

	exe := b.layout.LauncherPath(name)
	if err := b.copyResource(resources.LauncherTemplate, exe, executable); err != nil {
		return err
	}

	cfgPath := b.layout.ConfigPath(name)
	if err := b.config.Write(p, cfgPath); err != nil {
		return err
	}

	b.logger.Debug().
		Str("launcher", name).
		Str("executable", exe).
		Str("config", cfgPath).
		Msg("Launcher created")
	result.Launchers = append(result.Launchers, LauncherResult{
		Name:       name,
		Executable: exe,
		Config:     cfgPath,
	})
	return nil
}

func (b *Builder) copyNativeLibrary(result *Result) error {
	dst := b.layout.NativeLibraryPath(resources.NativeLibrary)
	if err := b.copyResource(resources.NativeLibrary, dst, ownerWritable); err != nil {
		return err
	}
	result.NativeLibrary = dst
	return nil
}

func (b *Builder) copyResource(name, dst string, mode modeFunc) error {
	rc, err := b.resources.Open(name)
	if err != nil {
		return err
	}
	defer rc.Close()
	return b.writeEntry(rc, dst, mode)
}

// copyApplication copies every resource set into the app directory
func (b *Builder) copyApplication(p params.Params, result *Result) error {
	appDir := b.layout.AppDirectory()
	for i, set := range p.AppResources {
		if set == nil {
			return errors.Newf(errors.ErrNullResourceSet,
				"application resource set %d is nil", i).
				WithDetail("index", i)
		}
		for _, rel := range set.Files {
			if err := params.ValidateRelative(rel); err != nil {
				return err
			}
			dst := joinRel(appDir, rel)
			if err := b.copyFile(set.Source(rel), dst); err != nil {
				return err
			}
			result.Files = append(result.Files, dst)
		}
		b.logger.Debug().
			Str("base", set.BaseDir).
			Int("files", len(set.Files)).
			Msg("Resource set copied")
	}
	return nil
}

// copyIcons writes the primary icon, then one icon per secondary launcher
// whose overlay sets its own. A rejected icon is recorded and skipped.
func (b *Builder) copyIcons(primary params.Params, launchers []params.LauncherOverlay, secondary []params.Params, result *Result) error {
	dst, err := b.writeIcon(primary, primary.AppName)
	switch {
	case errors.IsValidation(err):
		result.IconError = b.iconRejected(primary.AppName, primary.Icon, err)
	case err != nil:
		return err
	default:
		result.Icon = dst
	}

	for i, overlay := range launchers {
		if overlay.Icon == nil {
			continue
		}
		p := secondary[i]
		// result.Launchers[0] is the primary launcher
		launcher := &result.Launchers[i+1]
		dst, err := b.writeIcon(p, p.AppName)
		switch {
		case errors.IsValidation(err):
			launcher.IconError = b.iconRejected(p.AppName, p.Icon, err)
		case err != nil:
			return err
		default:
			launcher.Icon = dst
		}
	}
	return nil
}

// writeIcon places the icon of p, or the default icon, as <name><ext> in
// the desktop integration directory. A rejected icon is returned as a
// validation error and nothing is written.
func (b *Builder) writeIcon(p params.Params, name string) (string, error) {
	src, err := icon.Resolve(p.Icon)
	if err != nil {
		return "", err
	}

	var rc io.ReadCloser
	if src.IsDefault() {
		rc, err = b.resources.Open(resources.DefaultIcon)
	} else {
		rc, err = b.fs.Open(src.Path)
		if err != nil {
			err = errors.Wrapf(err, errors.ErrFileCopy, "cannot open icon %s", src.Path)
		}
	}
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var in io.Reader = rc
	if p.IconSize > 0 {
		data, err := icon.Render(rc, p.IconSize)
		if err != nil {
			return "", err
		}
		in = bytes.NewReader(data)
	}

	dst := b.layout.LauncherIconPath(name, src.Ext)
	if err := b.writeEntry(in, dst, ownerWritable); err != nil {
		return "", err
	}
	b.logger.Debug().Str("launcher", name).Str("icon", dst).Msg("Icon placed")
	return dst, nil
}

func (b *Builder) iconRejected(launcher, path string, err error) error {
	b.logger.Warn().Err(err).Str("launcher", launcher).Str("icon", path).Msg("Icon ignored")
	return err
}

func joinRel(dir, rel string) string {
	return filepath.Join(dir, filepath.FromSlash(rel))
}

func validateLauncherName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrInvalidInput, "invalid launcher name %q", name)
	}
	return nil
}
