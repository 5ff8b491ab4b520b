package repository

import (
	"context"
	"image"

	"dermascan-core/internal/domain/entity"
)

// RateLimiter is the per-client admission-control port. Implementations must
// be safe for concurrent use: two simultaneous admissions for the same key
// must never both pass when that would exceed the configured maximum.
type RateLimiter interface {
	Admit(ctx context.Context, clientKey string) (bool, error)
}

// UploadValidator vets raw upload bytes and, on success, yields the transient
// artifact holding the decoded image. Client faults come back as
// *entity.ValidationError; anything else is an internal fault.
type UploadValidator interface {
	Validate(data []byte, filename, declaredMIME string) (*entity.Artifact, error)
}

// LesionClassifier scores a decoded image against a fixed label vocabulary.
// Implementations may be slow and may be called concurrently.
type LesionClassifier interface {
	Classify(ctx context.Context, img image.Image) ([]entity.RawPrediction, error)
}
