package appimage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/appimg/pkg/appimage"
	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/filesystem"
	"github.com/arthur-debert/appimg/pkg/layout"
	"github.com/arthur-debert/appimg/pkg/params"
	"github.com/arthur-debert/appimg/pkg/resources"
	"github.com/arthur-debert/appimg/pkg/testutil"
	"github.com/arthur-debert/appimg/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type env struct {
	fs       types.FS
	inputDir string
	resDir   string
	outDir   string
	layout   layout.Layout
	builder  *appimage.Builder
}

// newEnv prepares an input directory with a.txt and a read-only
// sub/b.txt, a resource directory holding the native library, and a
// builder writing under a fresh output directory.
func newEnv(t *testing.T) *env {
	t.Helper()
	base := t.TempDir()
	e := &env{
		fs:       filesystem.NewOS(),
		inputDir: filepath.Join(base, "input"),
		resDir:   filepath.Join(base, "resources"),
		outDir:   filepath.Join(base, "out"),
	}

	testutil.CreateFile(t, e.inputDir, "a.txt", "alpha\x00\xff")
	require.NoError(t, os.Chmod(testutil.CreateFile(t, e.inputDir, "sub/b.txt", "bravo"), 0400))
	testutil.CreateFile(t, e.resDir, resources.NativeLibrary, "\x7fELF-lib")

	e.layout = layout.Resolve(e.outDir, "App")
	e.builder = appimage.New(e.fs, e.layout, resources.Layered(
		resources.Dir(e.fs, e.resDir),
		resources.Embedded(),
	))
	return e
}

func (e *env) primary() params.Params {
	return params.Params{
		AppName:    "App",
		Version:    "1.0",
		Identifier: "com.example.Main",
		MainJar:    "app.jar",
		MainClass:  "com.example.Main",
		Arguments:  []string{"--primary"},
		AppResources: []*params.ResourceSet{
			{BaseDir: e.inputDir, Files: []string{"a.txt", "sub/b.txt"}},
		},
	}
}

func overlays() []params.LauncherOverlay {
	return []params.LauncherOverlay{
		{Name: "App2", MainClass: params.String("com.example.Second")},
		{Name: "App3", Arguments: []string{"--third"}},
	}
}

func TestPrepareApplicationFiles(t *testing.T) {
	e := newEnv(t)
	secondIcon := filepath.Join(e.inputDir, "second.png")
	require.NoError(t, os.WriteFile(secondIcon, testutil.EncodePNG(t, 8, 8), 0644))

	launchers := overlays()
	launchers[0].Icon = params.String(secondIcon)

	result, err := e.builder.PrepareApplicationFiles(e.primary(), launchers)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, e.layout.Root(), result.Root)

	t.Run("roots exist and are writable", func(t *testing.T) {
		assert.Equal(t, e.layout.Roots(), result.Directories)
		for _, dir := range e.layout.Roots() {
			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir(), dir)
			assert.NoError(t, e.fs.Writable(dir))
		}
	})

	t.Run("launchers are executable and distinct", func(t *testing.T) {
		assert.Equal(t, []string{"App", "App2", "App3"}, result.LauncherNames())
		for _, name := range result.LauncherNames() {
			info, err := os.Stat(filepath.Join(e.layout.LaunchersDirectory(), name))
			require.NoError(t, err)
			mode := info.Mode().Perm()
			assert.Equal(t, os.FileMode(0111), mode&0111, "%s must be executable by all", name)
			assert.NotZero(t, mode&0200, "%s must be owner writable", name)
		}
	})

	t.Run("config files next to the app", func(t *testing.T) {
		for _, l := range result.Launchers {
			assert.Equal(t, filepath.Join(e.layout.AppDirectory(), l.Name+".cfg"), l.Config)
			assert.FileExists(t, l.Config)
		}
		data, err := os.ReadFile(filepath.Join(e.layout.AppDirectory(), "App2.cfg"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "app.name=App2\n")
		assert.Contains(t, string(data), "app.mainclass=com.example.Second\n")
		assert.Contains(t, string(data), "app.runtime=$ROOTDIR/lib/runtime\n")
		assert.Contains(t, string(data), "app.mainjar=$ROOTDIR/lib/app/app.jar\n")

		data, err = os.ReadFile(filepath.Join(e.layout.AppDirectory(), "App3.cfg"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "arguments=--third\n")
		assert.NotContains(t, string(data), "arguments=--primary\n")
	})

	t.Run("native library copied", func(t *testing.T) {
		assert.Equal(t, filepath.Join(e.layout.DLLDirectory(), "libapplauncher.so"), result.NativeLibrary)
		data, err := os.ReadFile(result.NativeLibrary)
		require.NoError(t, err)
		assert.Equal(t, []byte("\x7fELF-lib"), data)
	})

	t.Run("resources are byte identical", func(t *testing.T) {
		for _, rel := range []string{"a.txt", "sub/b.txt"} {
			want, err := os.ReadFile(filepath.Join(e.inputDir, filepath.FromSlash(rel)))
			require.NoError(t, err)
			got, err := os.ReadFile(filepath.Join(e.layout.AppDirectory(), filepath.FromSlash(rel)))
			require.NoError(t, err)
			assert.Equal(t, want, got, rel)
		}
		info, err := os.Stat(filepath.Join(e.layout.AppDirectory(), "sub", "b.txt"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "source mode plus owner write")
		assert.Len(t, result.Files, 2)
	})

	t.Run("default icon placed", func(t *testing.T) {
		assert.Equal(t, filepath.Join(e.layout.DesktopIntegrationDirectory(), "App.png"), result.Icon)
		assert.NoError(t, result.IconError)
		assert.FileExists(t, result.Icon)
	})

	t.Run("secondary launcher icon placed", func(t *testing.T) {
		require.Len(t, result.Launchers, 3)
		second := result.Launchers[1]
		assert.Equal(t, filepath.Join(e.layout.DesktopIntegrationDirectory(), "App2.png"), second.Icon)
		assert.NoError(t, second.IconError)

		want, err := os.ReadFile(secondIcon)
		require.NoError(t, err)
		got, err := os.ReadFile(second.Icon)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		assert.Empty(t, result.Launchers[2].Icon, "App3 shares the primary icon")
		assert.NoFileExists(t, filepath.Join(e.layout.DesktopIntegrationDirectory(), "App3.png"))
	})
}

func TestSecondaryLauncherNonPNGIconIsSkipped(t *testing.T) {
	e := newEnv(t)
	bad := filepath.Join(e.inputDir, "second.gif")
	require.NoError(t, os.WriteFile(bad, []byte("gif"), 0644))

	launchers := overlays()
	launchers[0].Icon = params.String(bad)

	result, err := e.builder.PrepareApplicationFiles(e.primary(), launchers)
	require.NoError(t, err)

	second := result.Launchers[1]
	assert.True(t, errors.IsErrorCode(second.IconError, errors.ErrIconNotPNG))
	assert.Empty(t, second.Icon)
	assert.NoFileExists(t, filepath.Join(e.layout.DesktopIntegrationDirectory(), "App2.gif"))
	assert.NoError(t, result.IconError, "the primary icon is unaffected")
	assert.FileExists(t, result.Icon)
}

func TestRebuildOverExistingImage(t *testing.T) {
	e := newEnv(t)

	_, err := e.builder.PrepareApplicationFiles(e.primary(), overlays())
	require.NoError(t, err)

	for _, p := range []string{
		filepath.Join(e.layout.AppDirectory(), "sub", "b.txt"),
		filepath.Join(e.layout.DLLDirectory(), resources.NativeLibrary),
		e.layout.IconPath(".png"),
	} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode().Perm()&0200, "%s must stay replaceable", p)
	}

	_, err = e.builder.PrepareApplicationFiles(e.primary(), overlays())
	require.NoError(t, err)
}

func TestUserIconCaseInsensitive(t *testing.T) {
	e := newEnv(t)
	iconPath := filepath.Join(e.inputDir, "icon.PNG")
	require.NoError(t, os.WriteFile(iconPath, []byte("png bytes"), 0644))

	p := e.primary()
	p.Icon = iconPath

	result, err := e.builder.PrepareApplicationFiles(p, nil)
	require.NoError(t, err)
	require.NoError(t, result.IconError)

	dst := filepath.Join(e.layout.DesktopIntegrationDirectory(), "App.PNG")
	assert.Equal(t, dst, result.Icon)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), data)
}

func TestNonPNGIconIsSkipped(t *testing.T) {
	e := newEnv(t)
	iconPath := filepath.Join(e.inputDir, "icon.jpg")
	require.NoError(t, os.WriteFile(iconPath, []byte("jpeg bytes"), 0644))

	p := e.primary()
	p.Icon = iconPath

	result, err := e.builder.PrepareApplicationFiles(p, nil)
	require.NoError(t, err, "a bad icon does not abort the build")

	require.Error(t, result.IconError)
	assert.True(t, errors.IsErrorCode(result.IconError, errors.ErrIconNotPNG))
	assert.Empty(t, result.Icon)
	assert.NoFileExists(t, filepath.Join(e.layout.DesktopIntegrationDirectory(), "App.jpg"))
	assert.NoFileExists(t, filepath.Join(e.layout.DesktopIntegrationDirectory(), "App.png"))
}

func TestIconRenderedAtSize(t *testing.T) {
	e := newEnv(t)
	p := e.primary()
	p.IconSize = 64

	result, err := e.builder.PrepareApplicationFiles(p, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(result.Icon)
	require.NoError(t, err)
	w, h := testutil.PNGSize(t, data)
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)
}

func TestUserIconRenderedAtSize(t *testing.T) {
	e := newEnv(t)
	p := e.primary()
	p.Icon = filepath.Join(e.inputDir, "icon.png")
	require.NoError(t, os.WriteFile(p.Icon, testutil.EncodePNG(t, 16, 16), 0644))
	p.IconSize = 128

	result, err := e.builder.PrepareApplicationFiles(p, nil)
	require.NoError(t, err)
	require.NoError(t, result.IconError)

	w, h := testutil.PNGSize(t, []byte(testutil.ReadFile(t, result.Icon)))
	assert.Equal(t, 128, w)
	assert.Equal(t, 128, h)
}

func TestMergeIsolation(t *testing.T) {
	e := newEnv(t)
	p := e.primary()
	before := p.Clone()

	_, err := e.builder.PrepareApplicationFiles(p, overlays())
	require.NoError(t, err)

	assert.Equal(t, before, p)
}

func TestRootOccupiedByFile(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.outDir, 0755))
	require.NoError(t, os.WriteFile(e.layout.Root(), []byte("not a dir"), 0644))

	result, err := e.builder.PrepareApplicationFiles(e.primary(), overlays())
	require.Error(t, err)
	assert.True(t, errors.IsIOFailure(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirNotWritable))

	assert.Empty(t, result.Launchers)
	assert.NoFileExists(t, e.layout.LauncherPath("App"))
}

func TestFirstFailingRootStopsCreation(t *testing.T) {
	e := newEnv(t)
	// lib/runtime is the second root; the launchers dir comes after it
	require.NoError(t, os.MkdirAll(filepath.Join(e.layout.Root(), "lib"), 0755))
	require.NoError(t, os.WriteFile(e.layout.RuntimeDirectory(), []byte("file"), 0644))

	result, err := e.builder.PrepareApplicationFiles(e.primary(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirNotWritable))
	assert.Equal(t, e.layout.RuntimeDirectory(), errors.GetErrorDetails(err)["dir"])

	assert.Equal(t, []string{e.layout.AppDirectory()}, result.Directories)
	assert.NoDirExists(t, e.layout.LaunchersDirectory())
}

func TestMissingNativeLibrary(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.Remove(filepath.Join(e.resDir, resources.NativeLibrary)))

	result, err := e.builder.PrepareApplicationFiles(e.primary(), overlays())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResourceNotFound))
	assert.True(t, errors.IsIOFailure(err))

	// reported before anything is written
	assert.Empty(t, result.Directories)
	assert.Empty(t, result.Launchers)
	assert.NoDirExists(t, e.layout.Root())
}

func TestBuiltInResourcesLackNativeLibrary(t *testing.T) {
	e := newEnv(t)
	b := appimage.New(e.fs, e.layout, resources.Layered(
		resources.Dir(e.fs, filepath.Join(e.outDir, "no-shared-resources")),
		resources.Embedded(),
	))

	_, err := b.PrepareApplicationFiles(e.primary(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResourceNotFound))
	assert.Equal(t, resources.NativeLibrary, errors.GetErrorDetails(err)["resource"])
	assert.NoFileExists(t, e.layout.LauncherPath("App"))
	assert.NoDirExists(t, e.layout.Root())
}

func TestNilResourceSetAborts(t *testing.T) {
	e := newEnv(t)
	p := e.primary()
	p.AppResources = append(p.AppResources, nil)

	result, err := e.builder.PrepareApplicationFiles(p, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNullResourceSet))
	assert.True(t, errors.IsValidation(err))

	assert.Empty(t, result.Icon, "icon step never runs")
	assert.NoFileExists(t, e.layout.IconPath(".png"))
}

func TestEscapingResourcePathRejected(t *testing.T) {
	e := newEnv(t)
	p := e.primary()
	p.AppResources = []*params.ResourceSet{{BaseDir: e.inputDir, Files: []string{"../escape.txt"}}}

	_, err := e.builder.PrepareApplicationFiles(p, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestMissingResourceFile(t *testing.T) {
	e := newEnv(t)
	p := e.primary()
	p.AppResources = []*params.ResourceSet{{BaseDir: e.inputDir, Files: []string{"nope.txt"}}}

	_, err := e.builder.PrepareApplicationFiles(p, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileCopy))
}

type recordingWriter struct {
	calls map[string]params.Params
	order []string
}

func (r *recordingWriter) Write(p params.Params, dst string) error {
	r.calls[dst] = p
	r.order = append(r.order, dst)
	return nil
}

func TestConfigWriterReceivesMergedParams(t *testing.T) {
	e := newEnv(t)
	w := &recordingWriter{calls: map[string]params.Params{}}
	e.builder.WithConfigWriter(w)

	_, err := e.builder.PrepareApplicationFiles(e.primary(), overlays())
	require.NoError(t, err)

	appDir := e.layout.AppDirectory()
	assert.Equal(t, []string{
		filepath.Join(appDir, "App.cfg"),
		filepath.Join(appDir, "App2.cfg"),
		filepath.Join(appDir, "App3.cfg"),
	}, w.order)

	second := w.calls[filepath.Join(appDir, "App2.cfg")]
	assert.Equal(t, "App2", second.AppName)
	assert.Equal(t, "com.example.Second", second.MainClass)
	assert.Equal(t, []string{"--primary"}, second.Arguments)

	third := w.calls[filepath.Join(appDir, "App3.cfg")]
	assert.Equal(t, "com.example.Main", third.MainClass, "App3 merges onto the primary, not App2")
}

func TestInvalidLauncherName(t *testing.T) {
	e := newEnv(t)

	_, err := e.builder.PrepareApplicationFiles(e.primary(), []params.LauncherOverlay{{Name: "../evil"}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestInMemoryBuild(t *testing.T) {
	fs := filesystem.NewMemFS()
	require.NoError(t, fs.MkdirAll("/res", 0755))
	require.NoError(t, fs.WriteFile("/res/libapplauncher.so", []byte("lib"), 0644))
	require.NoError(t, fs.MkdirAll("/in", 0755))
	require.NoError(t, fs.WriteFile("/in/app.jar", []byte("jar"), 0644))

	l := layout.Resolve("/out", "Mem")
	b := appimage.New(fs, l, resources.Layered(resources.Dir(fs, "/res"), resources.Embedded()))

	result, err := b.PrepareApplicationFiles(params.Params{
		AppName:      "Mem",
		MainJar:      "app.jar",
		AppResources: []*params.ResourceSet{{BaseDir: "/in", Files: []string{"app.jar"}}},
	}, nil)
	require.NoError(t, err)

	data, err := fs.ReadFile("/out/Mem/lib/app/app.jar")
	require.NoError(t, err)
	assert.Equal(t, []byte("jar"), data)

	info, err := fs.Stat(result.Launchers[0].Executable)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
