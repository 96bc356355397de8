package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/appimg/pkg/appimage"
	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/layout"
	"github.com/arthur-debert/appimg/pkg/output"
)

func sampleResult() *appimage.Result {
	root := filepath.Join("/out", "Hello")
	return &appimage.Result{
		Root: root,
		Directories: []string{
			filepath.Join(root, "lib", "app"),
			filepath.Join(root, "lib", "runtime"),
			filepath.Join(root, "bin"),
			filepath.Join(root, "lib"),
			filepath.Join(root, "lib", "app", "mods"),
		},
		Launchers: []appimage.LauncherResult{
			{Name: "Hello", Executable: filepath.Join(root, "bin", "Hello"), Config: filepath.Join(root, "lib", "app", "Hello.cfg")},
			{
				Name:       "hello-cli",
				Executable: filepath.Join(root, "bin", "hello-cli"),
				Config:     filepath.Join(root, "lib", "app", "hello-cli.cfg"),
				Icon:       filepath.Join(root, "lib", "hello-cli.png"),
			},
		},
		NativeLibrary: filepath.Join(root, "lib", "libapplauncher.so"),
		Files:         []string{filepath.Join(root, "lib", "app", "hello.jar")},
		Icon:          filepath.Join(root, "lib", "Hello.png"),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want output.Format
	}{
		{"", output.FormatAuto},
		{"auto", output.FormatAuto},
		{"term", output.FormatTerminal},
		{"Terminal", output.FormatTerminal},
		{"plain", output.FormatText},
		{"json", output.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := output.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := output.ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDetectFormatNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, output.FormatText, output.DetectFormat(os.Stdout))
	assert.Equal(t, output.FormatJSON, output.FormatJSON.Resolve(os.Stdout))
}

func TestRenderBuildText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.New(&buf, output.FormatText).RenderBuild(sampleResult(), nil))

	out := buf.String()
	assert.Contains(t, out, "Built Hello in /out/Hello")
	assert.Contains(t, out, "Hello bin/Hello (config lib/app/Hello.cfg)")
	assert.Contains(t, out, "  hello-cli bin/hello-cli (config lib/app/hello-cli.cfg) icon lib/hello-cli.png\n")
	assert.Contains(t, out, "lib/libapplauncher.so")
	assert.Contains(t, out, "1 application file\n")
	assert.Contains(t, out, "icon lib/Hello.png")
	assert.NotContains(t, out, "[success]")
}

func TestRenderBuildFailureAndIconWarning(t *testing.T) {
	res := sampleResult()
	res.Icon = ""
	res.IconError = errors.New(errors.ErrIconNotPNG, "icon.jpg is not a PNG")
	buildErr := errors.New(errors.ErrFileCopy, "cannot copy hello.jar")

	var buf bytes.Buffer
	require.NoError(t, output.New(&buf, output.FormatText).RenderBuild(res, buildErr))

	out := buf.String()
	assert.Contains(t, out, "Build failed [FILE_COPY] cannot copy hello.jar")
	assert.Contains(t, out, "image directory /out/Hello")
	assert.Contains(t, out, "icon skipped: [ICON_NOT_PNG] icon.jpg is not a PNG")
}

func TestRenderBuildLauncherIconWarning(t *testing.T) {
	res := sampleResult()
	res.Launchers[1].Icon = ""
	res.Launchers[1].IconError = errors.New(errors.ErrIconNotPNG, "cli.gif is not a PNG")

	var buf bytes.Buffer
	require.NoError(t, output.New(&buf, output.FormatText).RenderBuild(res, nil))
	assert.Contains(t, buf.String(), "! hello-cli icon skipped: [ICON_NOT_PNG] cli.gif is not a PNG")

	buf.Reset()
	require.NoError(t, output.New(&buf, output.FormatJSON).RenderBuild(res, nil))
	var decoded struct {
		LauncherIconErrors map[string]string `json:"launcher_icon_errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "[ICON_NOT_PNG] cli.gif is not a PNG", decoded.LauncherIconErrors["hello-cli"])
}

func TestRenderBuildJSON(t *testing.T) {
	res := sampleResult()
	res.IconError = errors.New(errors.ErrIconNotPNG, "bad icon")
	buildErr := errors.New(errors.ErrFileCopy, "copy failed").WithDetail("file", "hello.jar")

	var buf bytes.Buffer
	require.NoError(t, output.New(&buf, output.FormatJSON).RenderBuild(res, buildErr))

	var decoded struct {
		Root      string `json:"root"`
		Launchers []struct {
			Name string `json:"name"`
		} `json:"launchers"`
		IconError string `json:"icon_error"`
		Error     struct {
			Code    string                 `json:"code"`
			Kind    string                 `json:"kind"`
			Details map[string]interface{} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, res.Root, decoded.Root)
	require.Len(t, decoded.Launchers, 2)
	assert.Equal(t, "hello-cli", decoded.Launchers[1].Name)
	assert.Equal(t, "[ICON_NOT_PNG] bad icon", decoded.IconError)
	assert.Equal(t, "FILE_COPY", decoded.Error.Code)
	assert.Equal(t, "io", decoded.Error.Kind)
	assert.Equal(t, "hello.jar", decoded.Error.Details["file"])
}

func TestImageEntries(t *testing.T) {
	entries := output.ImageEntries(sampleResult())
	assert.Equal(t, []string{
		"bin",
		"bin/Hello",
		"bin/hello-cli",
		"lib",
		"lib/Hello.png",
		"lib/app",
		"lib/app/Hello.cfg",
		"lib/app/hello-cli.cfg",
		"lib/app/hello.jar",
		"lib/app/mods",
		"lib/hello-cli.png",
		"lib/libapplauncher.so",
		"lib/runtime",
	}, entries)
}

func TestRenderTree(t *testing.T) {
	tree, err := output.RenderTree(sampleResult())
	require.NoError(t, err)
	for _, name := range []string{"bin", "hello-cli", "libapplauncher.so", "Hello.cfg", "mods"} {
		assert.Contains(t, tree, name)
	}
}

func TestRenderLayout(t *testing.T) {
	l := layout.Resolve("/out", "Hello")

	var buf bytes.Buffer
	require.NoError(t, output.New(&buf, output.FormatText).RenderLayout(l))
	out := buf.String()
	assert.Contains(t, out, "linux image at /out/Hello")
	assert.Contains(t, out, "$ROOTDIR/lib/app/")

	buf.Reset()
	require.NoError(t, output.New(&buf, output.FormatJSON).RenderLayout(l))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, filepath.Join("/out", "Hello", "bin"), decoded["launchers"])
	assert.Len(t, decoded["roots"], 5)
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.New(&buf, output.FormatText).RenderError(errors.New(errors.ErrConfigValid, "no entry point")))
	assert.Equal(t, "✗ Error: [CONFIG_INVALID] no entry point\n", buf.String())
}
