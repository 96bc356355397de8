package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/logging"
)

// EnvPrefix prefixes every environment variable the loader reads
const EnvPrefix = "APPIMG_"

// ProjectFiles are looked up in the working directory, in order, when no
// config file is given explicitly.
var ProjectFiles = []string{"appimg.toml", "appimg.yaml", "appimg.yml"}

// LoadOptions controls Load
type LoadOptions struct {
	// ConfigFile is an explicit project file. It must exist.
	ConfigFile string
	// WorkDir is searched for a project file and anchors relative paths
	// when there is none. Defaults to the process working directory.
	WorkDir string
	// Overrides are dotted keys with the highest precedence, typically
	// set from command line flags.
	Overrides map[string]interface{}
}

// Load layers defaults, the project file, the environment and overrides
// into a Config. Paths are not resolved and defaults that depend on other
// keys are not applied; see Resolve.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot determine working directory")
		}
		workDir = wd
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(embeddedDefaults(defaultsTOML), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	// 2. Project file
	source, err := findProjectFile(opts.ConfigFile, workDir)
	if err != nil {
		return nil, err
	}
	baseDir := workDir
	if source != "" {
		parser, err := parserFor(source)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(source), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load %s", source).
				WithDetail("file", source)
		}
		baseDir = filepath.Dir(source)
		logger.Debug().Str("file", source).Msg("Loaded project file")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.BaseDir = baseDir
	cfg.Source = source
	return &cfg, nil
}

func findProjectFile(explicit, workDir string) (string, error) {
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(workDir, explicit)
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", explicit).
				WithDetail("file", explicit)
		}
		return explicit, nil
	}

	for _, name := range ProjectFiles {
		candidate := filepath.Join(workDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
		WithDetail("file", path)
}
