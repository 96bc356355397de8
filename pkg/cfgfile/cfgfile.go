// Package cfgfile writes the per-launcher runtime configuration file.
//
// The format is a sectioned key=value text file read by the launcher.
// Keys may repeat inside a section, one java-options line per option.
package cfgfile

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/params"
	"github.com/arthur-debert/appimg/pkg/types"
)

// Section names
const (
	SectionApplication = "Application"
	SectionJavaOptions = "JavaOptions"
	SectionArgOptions  = "ArgOptions"
)

// AppVersionProperty is passed to the runtime so the application can read
// its own version.
const AppVersionProperty = "jpackage.app-version"

// Writer writes the configuration of one launcher to dst
type Writer interface {
	Write(p params.Params, dst string) error
}

// Paths are the symbolic directories embedded in a config file
type Paths interface {
	CfgAppDir() string
	CfgRuntimeDir() string
}

// FileWriter renders config files onto a filesystem
type FileWriter struct {
	fs    types.FS
	paths Paths
}

// NewFileWriter returns a writer resolving paths against a layout
func NewFileWriter(fs types.FS, paths Paths) *FileWriter {
	return &FileWriter{fs: fs, paths: paths}
}

// Write renders p and writes it to dst, replacing any existing file
func (w *FileWriter) Write(p params.Params, dst string) error {
	content := Render(p, w.paths)

	if err := w.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create directory for %s", dst)
	}
	if err := w.fs.WriteFile(dst, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write launcher config %s", dst).
			WithDetail("launcher", p.LauncherName())
	}
	return nil
}

// Render returns the config file content for p
func Render(p params.Params, paths Paths) []byte {
	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	appDir := paths.CfgAppDir()

	section(out, SectionApplication)
	entry(out, "app.name", p.AppName)
	entry(out, "app.version", p.Version)
	entry(out, "app.runtime", paths.CfgRuntimeDir())
	entry(out, "app.identifier", p.Identifier)

	classpath := make([]string, 0, len(p.Classpath))
	for _, cp := range p.Classpath {
		classpath = append(classpath, appDir+filepath.ToSlash(cp))
	}
	entry(out, "app.classpath", strings.Join(classpath, ":"))

	if p.MainJar != "" {
		entry(out, "app.mainjar", appDir+filepath.ToSlash(p.MainJar))
	}
	if p.MainClass != "" {
		entry(out, "app.mainclass", p.MainClass)
	}
	if p.Module != "" {
		entry(out, "app.mainmodule", p.Module)
	}

	fmt.Fprintln(out)
	section(out, SectionJavaOptions)
	if p.Version != "" {
		entry(out, "java-options", fmt.Sprintf("-D%s=%s", AppVersionProperty, p.Version))
	}
	if p.Module != "" {
		entry(out, "java-options", "--module-path")
		entry(out, "java-options", appDir+"mods")
	}
	for _, opt := range p.JavaOptions {
		entry(out, "java-options", opt)
	}

	if len(p.Arguments) > 0 {
		fmt.Fprintln(out)
		section(out, SectionArgOptions)
		for _, arg := range p.Arguments {
			entry(out, "arguments", arg)
		}
	}

	_ = out.Flush()
	return buf.Bytes()
}

func section(out *bufio.Writer, name string) {
	fmt.Fprintf(out, "[%s]\n", name)
}

// entry writes key=value. Newlines would break the line format, so they
// are flattened to spaces.
func entry(out *bufio.Writer, key, value string) {
	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value)
	fmt.Fprintf(out, "%s=%s\n", key, value)
}
