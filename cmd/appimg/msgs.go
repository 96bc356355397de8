package appimg

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Lay out Linux application images"
	MsgBuildShort      = "Build an application image"
	MsgLayoutShort     = "Show where a build would write"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "appimg %s\n"
	MsgCleanedUp     = "removed partial image %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrCleanup   = "%w; failed to remove partial image %s: %w"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Project file (default: appimg.toml, appimg.yaml or appimg.yml in the current directory)"
	MsgFlagOutput       = "Directory the image directory is created in"
	MsgFlagName         = "Application name (default: derived from the main class or jar)"
	MsgFlagVersion      = "Application version"
	MsgFlagMainJar      = "Main jar, relative to the application directory"
	MsgFlagMainClass    = "Main class"
	MsgFlagModule       = "Main module, as module[/class]"
	MsgFlagInput        = "Input directory copied into the image (repeatable)"
	MsgFlagIcon         = "PNG icon (default: built-in icon)"
	MsgFlagIconSize     = "Re-render the icon as a square of this many pixels"
	MsgFlagResourceDir  = "Directory overriding the built-in launcher resources"
	MsgFlagPlatform     = "Target platform family"
	MsgFlagFormat       = "Output format: auto, term, text or json"
	MsgFlagTree         = "Print a tree of the built image"
	MsgFlagCleanOnError = "Remove the image directory when the build fails"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/layout-long.txt
	msgLayoutLongRaw string
	MsgLayoutLong    = strings.TrimSpace(msgLayoutLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
