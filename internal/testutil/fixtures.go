package testutil

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

// TestImage returns a small decodable image with some pixel variance.
func TestImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	return img
}

// PNGBytes returns a small genuine PNG payload.
func PNGBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, TestImage()); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

// JPEGBytes returns a small genuine JPEG payload.
func JPEGBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, TestImage(), nil); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return buf.Bytes()
}
