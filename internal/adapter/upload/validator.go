// Package upload vets incoming image uploads before they reach the
// classifier: allow-listed extension and declared type first, then a
// persisted-then-verified content check that structurally decodes the bytes
// that actually landed on disk.
package upload

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"dermascan-core/internal/domain/entity"
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp"}

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// Validator writes accepted uploads to uniquely named files under dir and
// verifies they decode as genuine images before handing them on.
type Validator struct {
	dir      string
	maxBytes int64
}

func NewValidator(dir string, maxBytes int64) (*Validator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Validator{dir: dir, maxBytes: maxBytes}, nil
}

// Validate applies the checks in order and short-circuits on the first
// failure. Client faults are *entity.ValidationError with a caller-safe
// reason. On success the caller owns the returned artifact and must Remove
// it; on any failure no file is left behind.
func (v *Validator) Validate(data []byte, filename, declaredMIME string) (*entity.Artifact, error) {
	if filename == "" {
		return nil, &entity.ValidationError{Reason: "No file selected."}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionAllowed(ext) {
		return nil, &entity.ValidationError{Reason: fmt.Sprintf(
			"Unsupported format '%s'. Use: %s", ext, strings.Join(allowedExtensions, ", "))}
	}

	// A missing declared type is tolerated; a present one must be allowed.
	if declaredMIME != "" && !allowedMIMETypes[declaredMIME] {
		return nil, &entity.ValidationError{Reason: "Invalid file type."}
	}

	// The transport layer also caps the body; re-checked here so the cap
	// holds when the validator is driven directly.
	if v.maxBytes > 0 && int64(len(data)) > v.maxBytes {
		return nil, entity.ErrPayloadTooLarge
	}

	// The stored name comes from a random identifier, never from the client.
	id := uuid.NewString()
	path := filepath.Join(v.dir, id+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	img, err := reopenAndDecode(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, &entity.ValidationError{Reason: "The uploaded file is not a valid image."}
	}

	return &entity.Artifact{ID: id, Path: path, Image: normalizeRGB(img)}, nil
}

func extensionAllowed(ext string) bool {
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// reopenAndDecode re-reads the persisted file so the bytes that get verified
// are the bytes that were written, then structurally parses them.
func reopenAndDecode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// normalizeRGB flattens whatever color model the decoder produced onto an
// RGBA canvas so every classifier sees the same pixel format.
func normalizeRGB(img image.Image) image.Image {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
