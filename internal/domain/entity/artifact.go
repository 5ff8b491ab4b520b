package entity

import (
	"errors"
	"image"
	"io/fs"
	"os"
)

// Artifact is the transient on-disk copy of one uploaded image. It is scoped
// to a single request: created once the cheap checks pass, content-verified,
// handed to the classifier as decoded pixels, and removed before the request
// completes. Its name is derived from a random identifier, never from the
// client-supplied filename.
type Artifact struct {
	ID    string
	Path  string
	Image image.Image // decoded and color-normalized
}

// Remove deletes the on-disk file. Safe to call more than once; a file that
// is already gone is not an error.
func (a *Artifact) Remove() error {
	if a == nil || a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
