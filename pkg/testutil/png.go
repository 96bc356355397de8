package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// EncodePNG returns a w by h PNG filled with a single color
func EncodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill := color.NRGBA{R: 200, G: 50, B: 50, A: 255}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// PNGSize decodes the dimensions of a PNG
func PNGSize(t *testing.T, data []byte) (int, int) {
	t.Helper()

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	return cfg.Width, cfg.Height
}
