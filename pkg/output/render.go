package output

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/appimg/pkg/appimage"
	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/layout"
	"github.com/arthur-debert/appimg/pkg/style"
)

// Renderer writes results in one format
type Renderer struct {
	w      io.Writer
	format Format
	tree   bool
}

// New creates a renderer. FormatAuto renders as text; resolve it first to
// get terminal output.
func New(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Renderer{w: w, format: format}
}

// WithTree appends a tree of the image to build output
func (r *Renderer) WithTree(tree bool) *Renderer {
	r.tree = tree
	return r
}

// Format returns the format the renderer writes
func (r *Renderer) Format() Format {
	return r.format
}

type buildReport struct {
	*appimage.Result
	IconError          string            `json:"icon_error,omitempty"`
	LauncherIconErrors map[string]string `json:"launcher_icon_errors,omitempty"`
	Error              *errorReport      `json:"error,omitempty"`
}

type errorReport struct {
	Code    errors.ErrorCode       `json:"code"`
	Kind    errors.Kind            `json:"kind"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func newErrorReport(err error) *errorReport {
	if err == nil {
		return nil
	}
	code := errors.GetErrorCode(err)
	return &errorReport{
		Code:    code,
		Kind:    errors.KindOf(code),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
	}
}

// RenderBuild reports a build. res may be partial when buildErr is set.
func (r *Renderer) RenderBuild(res *appimage.Result, buildErr error) error {
	if res == nil {
		res = &appimage.Result{}
	}

	if r.format == FormatJSON {
		report := buildReport{Result: res, Error: newErrorReport(buildErr)}
		if res.IconError != nil {
			report.IconError = res.IconError.Error()
		}
		for _, l := range res.Launchers {
			if l.IconError == nil {
				continue
			}
			if report.LauncherIconErrors == nil {
				report.LauncherIconErrors = map[string]string{}
			}
			report.LauncherIconErrors[l.Name] = l.IconError.Error()
		}
		return r.encode(report)
	}

	var lines, warnings []string
	item := func(format string, args ...interface{}) {
		lines = append(lines, style.Indent(fmt.Sprintf(format, args...), 1))
	}

	if buildErr != nil {
		lines = append(lines, fmt.Sprintf("[error]✗ Build failed[/error] %s", buildErr))
		if res.Root != "" {
			item("image directory [path]%s[/path]", res.Root)
		}
	} else {
		lines = append(lines, fmt.Sprintf("[success]✓[/success] Built [bold]%s[/bold] in [path]%s[/path]",
			filepath.Base(res.Root), res.Root))
	}

	for _, l := range res.Launchers {
		line := fmt.Sprintf("[launcher]%s[/launcher] %s [muted](config %s)[/muted]",
			l.Name, rel(res.Root, l.Executable), rel(res.Root, l.Config))
		if l.Icon != "" {
			line += fmt.Sprintf(" [icon]icon[/icon] %s", rel(res.Root, l.Icon))
		}
		item("%s", line)
		if l.IconError != nil {
			warnings = append(warnings, fmt.Sprintf("[warning]! %s icon skipped:[/warning] %s", l.Name, l.IconError))
		}
	}
	if res.NativeLibrary != "" {
		item("[library]%s[/library]", rel(res.Root, res.NativeLibrary))
	}
	if n := len(res.Files); n > 0 {
		item("%d application %s", n, plural(n, "file", "files"))
	}
	if res.Icon != "" {
		item("[icon]icon[/icon] %s", rel(res.Root, res.Icon))
	}
	if res.IconError != nil {
		lines = append(lines, fmt.Sprintf("[warning]! icon skipped:[/warning] %s", res.IconError))
	}
	lines = append(lines, warnings...)

	if err := r.print(lines...); err != nil {
		return err
	}

	if r.tree && res.Root != "" {
		tree, err := RenderTree(res)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(r.w, tree); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write output")
		}
	}
	return nil
}

type layoutReport struct {
	Platform  string   `json:"platform"`
	Root      string   `json:"root"`
	Launchers string   `json:"launchers"`
	App       string   `json:"app"`
	Runtime   string   `json:"runtime"`
	DLL       string   `json:"dll"`
	Desktop   string   `json:"desktop_integration"`
	AppMods   string   `json:"app_mods"`
	Roots     []string `json:"roots"`
	CfgApp    string   `json:"cfg_app_dir"`
	CfgRun    string   `json:"cfg_runtime_dir"`
}

// RenderLayout describes where a build would write
func (r *Renderer) RenderLayout(l layout.Layout) error {
	report := layoutReport{
		Platform:  l.Template().Platform,
		Root:      l.Root(),
		Launchers: l.LaunchersDirectory(),
		App:       l.AppDirectory(),
		Runtime:   l.RuntimeDirectory(),
		DLL:       l.DLLDirectory(),
		Desktop:   l.DesktopIntegrationDirectory(),
		AppMods:   l.AppModsDirectory(),
		Roots:     l.Roots(),
		CfgApp:    l.CfgAppDir(),
		CfgRun:    l.CfgRuntimeDir(),
	}
	if r.format == FormatJSON {
		return r.encode(report)
	}

	rows := [][2]string{
		{"launchers", report.Launchers},
		{"app", report.App},
		{"runtime", report.Runtime},
		{"native library", report.DLL},
		{"desktop integration", report.Desktop},
		{"app modules", report.AppMods},
	}
	lines := []string{fmt.Sprintf("[title]%s[/title] image at [path]%s[/path]", report.Platform, report.Root)}
	for _, row := range rows {
		lines = append(lines, style.Indent(fmt.Sprintf("%-20s %s", row[0], rel(report.Root, row[1])), 1))
	}
	lines = append(lines,
		style.Indent(fmt.Sprintf("%-20s [code]%s[/code]", "cfg app dir", report.CfgApp), 1),
		style.Indent(fmt.Sprintf("%-20s [code]%s[/code]", "cfg runtime dir", report.CfgRun), 1),
	)
	return r.print(lines...)
}

// RenderError reports a failure outside a build
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatJSON {
		return r.encode(map[string]*errorReport{"error": newErrorReport(err)})
	}
	return r.print(fmt.Sprintf("[error]✗ Error:[/error] %s", err))
}

func (r *Renderer) print(lines ...string) error {
	text := strings.Join(lines, "\n") + "\n"
	if r.format == FormatTerminal {
		text = style.Render(text)
	} else {
		text = style.Strip(text)
	}
	if _, err := io.WriteString(r.w, text); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write output")
	}
	return nil
}

func (r *Renderer) encode(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write JSON output")
	}
	return nil
}

func rel(root, p string) string {
	if root == "" {
		return p
	}
	r, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(r, "..") {
		return p
	}
	return filepath.ToSlash(r)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
