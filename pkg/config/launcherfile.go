package config

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/types"
)

// launcherFile is the content of a secondary launcher file
type launcherFile struct {
	MainJar     *string  `toml:"main_jar" yaml:"main_jar"`
	MainClass   *string  `toml:"main_class" yaml:"main_class"`
	Module      *string  `toml:"module" yaml:"module"`
	Arguments   []string `toml:"arguments" yaml:"arguments"`
	JavaOptions []string `toml:"java_options" yaml:"java_options"`
	Icon        *string  `toml:"icon" yaml:"icon"`
	Version     *string  `toml:"version" yaml:"version"`
}

func readLauncherFile(fsys types.FS, path string) (*launcherFile, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read launcher file %s", path).
			WithDetail("file", path)
	}

	var lf launcherFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &lf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &lf)
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported launcher file type %q", filepath.Ext(path)).
			WithDetail("file", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse launcher file %s", path).
			WithDetail("file", path)
	}

	if lf.Icon != nil && *lf.Icon != "" && !filepath.IsAbs(*lf.Icon) {
		icon := filepath.Join(filepath.Dir(path), *lf.Icon)
		lf.Icon = &icon
	}
	return &lf, nil
}

// withFile fills the keys lc leaves unset from the launcher file
func (lc LauncherConfig) withFile(lf *launcherFile) LauncherConfig {
	if lf == nil {
		return lc
	}
	if lc.MainJar == nil {
		lc.MainJar = lf.MainJar
	}
	if lc.MainClass == nil {
		lc.MainClass = lf.MainClass
	}
	if lc.Module == nil {
		lc.Module = lf.Module
	}
	if lc.Arguments == nil {
		lc.Arguments = lf.Arguments
	}
	if lc.JavaOptions == nil {
		lc.JavaOptions = lf.JavaOptions
	}
	if lc.Icon == nil {
		lc.Icon = lf.Icon
	}
	if lc.Version == nil {
		lc.Version = lf.Version
	}
	return lc
}
