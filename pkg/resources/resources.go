package resources

import (
	"embed"
	stderrors "errors"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/appimg/pkg/errors"
	"github.com/arthur-debert/appimg/pkg/types"
)

// Logical resource names
const (
	LauncherTemplate = "applauncher"
	NativeLibrary    = "libapplauncher.so"
	DefaultIcon      = "default-icon.png"
)

//go:embed assets/*
var assets embed.FS

// Provider opens named resources
type Provider interface {
	Open(name string) (io.ReadCloser, error)
	// Describe names where the provider looks, for logs and errors.
	Describe() string
}

// Embedded returns the provider backed by the assets compiled into
// appimg: the launcher template and the default icon. The native library
// is built per target and always comes from a resource directory.
func Embedded() Provider {
	return embeddedProvider{}
}

type embeddedProvider struct{}

func (embeddedProvider) Open(name string) (io.ReadCloser, error) {
	f, err := assets.Open(path.Join("assets", name))
	if err != nil {
		return nil, notFound(name, "embedded", err)
	}
	return f, nil
}

func (embeddedProvider) Describe() string { return "embedded" }

// Dir returns a provider reading resources from a directory
func Dir(fsys types.FS, dir string) Provider {
	return dirProvider{fs: fsys, dir: dir}
}

type dirProvider struct {
	fs  types.FS
	dir string
}

func (d dirProvider) Open(name string) (io.ReadCloser, error) {
	rc, err := d.fs.Open(filepath.Join(d.dir, name))
	if err != nil {
		return nil, notFound(name, d.dir, err)
	}
	return rc, nil
}

func (d dirProvider) Describe() string { return d.dir }

// Layered tries each provider in order and returns the first hit
func Layered(providers ...Provider) Provider {
	return layered(providers)
}

type layered []Provider

func (l layered) Open(name string) (io.ReadCloser, error) {
	for _, p := range l {
		rc, err := p.Open(name)
		if err == nil {
			return rc, nil
		}
		if !errors.IsErrorCode(err, errors.ErrResourceNotFound) {
			return nil, err
		}
	}
	return nil, errors.Newf(errors.ErrResourceNotFound, "resource %s not found in %s", name, l.Describe()).
		WithDetails(map[string]interface{}{
			"resource": name,
			"searched": l.Describe(),
		})
}

func (l layered) Describe() string {
	names := make([]string, len(l))
	for i, p := range l {
		names[i] = p.Describe()
	}
	return strings.Join(names, ", ")
}

// Require checks that every named resource can be opened from p. It
// returns the first failure.
func Require(p Provider, names ...string) error {
	for _, name := range names {
		rc, err := p.Open(name)
		if err != nil {
			return err
		}
		_ = rc.Close()
	}
	return nil
}

func notFound(name, where string, err error) error {
	if errors.IsErrorCode(err, errors.ErrResourceNotFound) {
		return err
	}
	code := errors.ErrResourceNotFound
	if !isNotExist(err) {
		code = errors.ErrFileAccess
	}
	return errors.Wrapf(err, code, "resource %s not available from %s", name, where).
		WithDetail("resource", name)
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, fs.ErrInvalid)
}
