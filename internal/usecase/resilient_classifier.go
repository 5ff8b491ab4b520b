package usecase

import (
	"context"
	"fmt"
	"image"
	"log"
	"math/rand"
	"strings"
	"time"

	"dermascan-core/internal/domain/entity"
	"dermascan-core/internal/domain/repository"
)

// ResilientClassifier wraps the primary classification upstream with a
// scoped timeout, bounded retries and an optional single-shot fallback tier,
// so one slow or flaky model host cannot hang the pipeline.
type ResilientClassifier struct {
	primary    repository.LesionClassifier
	fallback   repository.LesionClassifier // may be nil
	maxRetries int
	baseDelay  time.Duration
	timeout    time.Duration
}

func NewResilientClassifier(primary, fallback repository.LesionClassifier) *ResilientClassifier {
	return &ResilientClassifier{
		primary:    primary,
		fallback:   fallback,
		maxRetries: 2, // total 3 attempts for the primary
		baseDelay:  500 * time.Millisecond,
		timeout:    25 * time.Second, // cap per classification
	}
}

func (r *ResilientClassifier) Classify(ctx context.Context, img image.Image) ([]entity.RawPrediction, error) {
	// A scoped context so one slow upstream doesn't hang the whole server.
	resCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.classifyWithRetry(resCtx, r.primary, img)
	if err == nil {
		return raw, nil
	}

	if r.fallback == nil {
		return nil, err
	}

	log.Printf("[RELIABILITY] primary classifier exhausted, switching to fallback: %v", err)

	// The fallback tier gets exactly one attempt.
	raw, ferr := r.fallback.Classify(resCtx, img)
	if ferr != nil {
		return nil, fmt.Errorf("both primary and fallback classifiers failed: %w", ferr)
	}
	return raw, nil
}

func (r *ResilientClassifier) classifyWithRetry(ctx context.Context, c repository.LesionClassifier, img image.Image) ([]entity.RawPrediction, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		raw, err := c.Classify(ctx, img)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !r.isRetryable(err) || attempt == r.maxRetries {
			break
		}

		select {
		case <-time.After(r.calculateBackoff(attempt)):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (r *ResilientClassifier) isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	// Rate limits (429), server errors (5xx) and cold starts are transient.
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "loading") ||
		strings.Contains(msg, "deadline")
}

func (r *ResilientClassifier) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.baseDelay) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * backoff // 20% jitter
	return time.Duration(backoff + jitter)
}
