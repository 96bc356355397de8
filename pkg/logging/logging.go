package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BuildLogLevel is the least severe level written to the build log file,
// whatever the console verbosity.
const BuildLogLevel = zerolog.InfoLevel

// ConsoleLevel maps a -v count to the level shown on the console:
// none is warnings, -v info, -vv debug, -vvv and more trace.
func ConsoleLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger installs the global logger for one CLI run. The console on
// stderr shows what verbosity asks for; the build log under the XDG
// state directory keeps BuildLogLevel and above so a failed build can be
// inspected afterwards without re-running it with -v.
func SetupLogger(verbosity int) {
	console := ConsoleLevel(verbosity)
	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.Kitchen,
				NoColor:    os.Getenv("NO_COLOR") != "",
			}},
			Level: console,
		},
	}

	path := BuildLogPath()
	file, fileErr := openBuildLog(path)
	if fileErr == nil {
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: file},
			Level:  BuildLogLevel,
		})
	}

	global := console
	if fileErr == nil && BuildLogLevel < global {
		global = BuildLogLevel
	}
	zerolog.SetGlobalLevel(global)

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Build log unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("build_log", path).Msg("Logger initialized")
}

// BuildLogPath is $XDG_STATE_HOME/appimg/appimg.log. The environment is
// read on every call so a changed XDG_STATE_HOME is honoured.
func BuildLogPath() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		state = xdg.StateHome
	}
	if state == "" {
		return "appimg.log"
	}
	return filepath.Join(state, "appimg", "appimg.log")
}

func openBuildLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create build log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open build log: %w", err)
	}
	return f, nil
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// NewBuildID returns a fresh identifier correlating the lines of one build
func NewBuildID() string {
	return uuid.NewString()
}

// ForBuild returns a component logger tagged with a build id
func ForBuild(component, buildID string) zerolog.Logger {
	return GetLogger(component).With().Str("build_id", buildID).Logger()
}

// StartStep logs the start of a build step and returns the function that
// closes it. The closing line carries the duration and, when *errp is
// not nil, the error the step ended with.
func StartStep(logger zerolog.Logger, step string) func(errp *error) {
	start := time.Now()
	logger.Debug().Str("step", step).Msg("Step started")

	return func(errp *error) {
		if errp != nil && *errp != nil {
			logger.Error().
				Err(*errp).
				Str("step", step).
				Dur("duration", time.Since(start)).
				Msg("Step failed")
			return
		}
		logger.Debug().
			Str("step", step).
			Dur("duration", time.Since(start)).
			Msg("Step completed")
	}
}
