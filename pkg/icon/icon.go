// Package icon resolves and prepares the application icon.
package icon

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/appimg/pkg/errors"
	"golang.org/x/image/draw"
)

// PNGExt is the only extension accepted for user icons
const PNGExt = ".png"

// Source is a resolved icon. A Source with an empty Path selects the
// default icon resource.
type Source struct {
	Path string
	Ext  string
}

// IsDefault reports whether the built-in icon is used
func (s Source) IsDefault() bool {
	return s.Path == ""
}

// Resolve checks a user supplied icon path. An empty path resolves to the
// default icon. Anything without a .png extension (any case) fails with
// an ErrIconNotPNG validation error.
func Resolve(path string) (Source, error) {
	if path == "" {
		return Source{Ext: PNGExt}, nil
	}
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, PNGExt) {
		return Source{}, errors.Newf(errors.ErrIconNotPNG,
			"icon %s is not a PNG file", path).
			WithDetail("icon", path)
	}
	return Source{Path: path, Ext: ext}, nil
}

// Render decodes a PNG and re-encodes it as a size x size square, scaling
// with Catmull-Rom. Icons that already have that size are returned as is.
func Render(r io.Reader, size int) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileCopy, "cannot read icon")
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIconNotPNG, "icon is not a valid PNG image")
	}

	b := src.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return data, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "cannot encode icon")
	}
	return out.Bytes(), nil
}
