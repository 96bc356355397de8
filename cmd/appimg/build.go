package appimg

import (
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/appimg/pkg/appimage"
	"github.com/arthur-debert/appimg/pkg/config"
	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/filesystem"
	"github.com/arthur-debert/appimg/pkg/logging"
	"github.com/arthur-debert/appimg/pkg/output"
	"github.com/arthur-debert/appimg/pkg/style"
)

// projectFlags are the flags shared by commands that resolve a project
type projectFlags struct {
	configFile  string
	outputDir   string
	name        string
	appVersion  string
	mainJar     string
	mainClass   string
	module      string
	inputs      []string
	icon        string
	iconSize    int
	resourceDir string
	platform    string
	format      string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&f.outputDir, "output", "o", "", MsgFlagOutput)
	flags.StringVarP(&f.name, "name", "n", "", MsgFlagName)
	flags.StringVar(&f.appVersion, "app-version", "", MsgFlagVersion)
	flags.StringVar(&f.mainJar, "main-jar", "", MsgFlagMainJar)
	flags.StringVar(&f.mainClass, "main-class", "", MsgFlagMainClass)
	flags.StringVar(&f.module, "module", "", MsgFlagModule)
	flags.StringArrayVarP(&f.inputs, "input", "i", nil, MsgFlagInput)
	flags.StringVar(&f.icon, "icon", "", MsgFlagIcon)
	flags.IntVar(&f.iconSize, "icon-size", 0, MsgFlagIconSize)
	flags.StringVar(&f.resourceDir, "resource-dir", "", MsgFlagResourceDir)
	flags.StringVar(&f.platform, "platform", "", MsgFlagPlatform)
	flags.StringVar(&f.format, "format", "auto", MsgFlagFormat)
}

// overrides maps the flags the user set onto config keys
func (f *projectFlags) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	changed := cmd.Flags().Changed
	o := map[string]interface{}{}

	abs := func(p string) (string, error) {
		a, err := filepath.Abs(p)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve path %s", p)
		}
		return a, nil
	}

	for flag, key := range map[string]string{
		"name":        "app.name",
		"app-version": "app.version",
		"main-jar":    "app.main_jar",
		"main-class":  "app.main_class",
		"module":      "app.module",
		"platform":    "output.platform",
	} {
		if changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			o[key] = v
		}
	}
	if changed("icon-size") {
		o["app.icon_size"] = f.iconSize
	}

	for flag, target := range map[string]struct {
		key   string
		value string
	}{
		"output":       {"output.dir", f.outputDir},
		"icon":         {"app.icon", f.icon},
		"resource-dir": {"resources.dir", f.resourceDir},
	} {
		if !changed(flag) {
			continue
		}
		p, err := abs(target.value)
		if err != nil {
			return nil, err
		}
		o[target.key] = p
	}

	if changed("input") {
		inputs := make([]interface{}, 0, len(f.inputs))
		for _, in := range f.inputs {
			p, err := abs(in)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, map[string]interface{}{"dir": p})
		}
		o["inputs"] = inputs
	}
	return o, nil
}

// resolve loads and resolves the project the flags describe
func (f *projectFlags) resolve(cmd *cobra.Command) (*config.Build, error) {
	overrides, err := f.overrides(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: f.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}
	return config.Resolve(cfg, filesystem.NewOS())
}

// renderer picks the output format for w
func (f *projectFlags) renderer(w io.Writer) (*output.Renderer, error) {
	format, err := output.ParseFormat(f.format)
	if err != nil {
		return nil, err
	}
	if file, ok := outputFile(w); ok {
		format = format.Resolve(file)
	}
	if format != output.FormatTerminal {
		pterm.DisableStyling()
	}
	return output.New(w, format), nil
}

func newBuildCmd() *cobra.Command {
	var (
		flags        projectFlags
		tree         bool
		cleanOnError bool
	)

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := flags.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runBuild(cmd, &flags, renderer.WithTree(tree), cleanOnError)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&tree, "tree", false, MsgFlagTree)
	cmd.Flags().BoolVar(&cleanOnError, "clean-on-error", false, MsgFlagCleanOnError)
	return cmd
}

func runBuild(cmd *cobra.Command, flags *projectFlags, renderer *output.Renderer, cleanOnError bool) error {
	build, err := flags.resolve(cmd)
	if err != nil {
		return reportIfJSON(renderer, err)
	}

	buildID := logging.NewBuildID()
	logger := logging.ForBuild("build", buildID)
	logger.Info().
		Str("app", build.Primary.AppName).
		Str("root", build.Layout.Root()).
		Strs("resource_dirs", build.ResourceDirs).
		Msg("Building application image")

	fsys := filesystem.NewOS()
	builder := appimage.New(fsys, build.Layout, build.ResourceProvider(fsys)).WithLogger(logger)

	done := logging.StartStep(logger, "build")
	res, buildErr := builder.PrepareApplicationFiles(build.Primary, build.Launchers)
	done(&buildErr)

	if buildErr != nil && cleanOnError {
		root := build.Layout.Root()
		if err := fsys.RemoveAll(root); err != nil {
			logger.Error().Err(err).Str("root", root).Msg("Failed to remove partial image")
			buildErr = fmt.Errorf(MsgErrCleanup, buildErr, root, err)
		} else {
			logger.Info().Str("root", root).Msg("Removed partial image")
			fmt.Fprintf(cmd.ErrOrStderr(), MsgCleanedUp, root)
		}
	}

	if err := renderer.RenderBuild(res, buildErr); err != nil {
		return err
	}
	if buildErr != nil {
		return reported{buildErr}
	}
	return nil
}

func newLayoutCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:     "layout",
		Short:   MsgLayoutShort,
		Long:    MsgLayoutLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := flags.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			build, err := flags.resolve(cmd)
			if err != nil {
				return reportIfJSON(renderer, err)
			}
			return renderer.RenderLayout(build.Layout)
		},
	}

	flags.register(cmd)
	return cmd
}

// reported marks an error that was already rendered to the user
type reported struct{ error }

func (r reported) Unwrap() error { return r.error }

// IsReported reports whether err was already shown by the command
func IsReported(err error) bool {
	var r reported
	return stderrors.As(err, &r)
}

// reportIfJSON renders err on stdout for JSON consumers
func reportIfJSON(renderer *output.Renderer, err error) error {
	if renderer.Format() != output.FormatJSON {
		return err
	}
	if rerr := renderer.RenderError(err); rerr != nil {
		return err
	}
	return reported{err}
}

func formatError(err error) string {
	return style.Get("error").Render("Error:") + " " + err.Error()
}
