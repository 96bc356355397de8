package appimg

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/appimg/pkg/style"
)

// stdoutIsTerminal is swapped in tests
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// emphasize renders s in bold on a terminal
func emphasize(s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return style.Bold(s)
}

// initTemplateFormatting registers the help template functions
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold": emphasize,
		"boldUpper": func(s string) string {
			return emphasize(strings.ToUpper(s))
		},
	})
}

// outputFile returns w as a file when it is one, for format detection
func outputFile(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	return f, ok
}

// themeFile is the user theme: $APPIMG_THEME, else theme.yaml in the
// appimg config directory
func themeFile() string {
	if p := os.Getenv("APPIMG_THEME"); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "appimg", "theme.yaml")
}

// loadUserTheme applies the user theme when one exists. A broken theme
// is logged and the built-in styles stay.
func loadUserTheme() {
	path := themeFile()
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := style.LoadTheme(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Ignoring user theme")
		return
	}
	log.Debug().Str("path", path).Msg("Loaded user theme")
}
