// Package testutil provides hand-written mocks for the domain ports.
package testutil

import (
	"context"
	"image"
	"sync"

	"dermascan-core/internal/domain/entity"
)

// MockClassifier implements repository.LesionClassifier.
type MockClassifier struct {
	ClassifyFunc func(ctx context.Context, img image.Image) ([]entity.RawPrediction, error)

	mu        sync.Mutex
	CallCount int
}

func (m *MockClassifier) Classify(ctx context.Context, img image.Image) ([]entity.RawPrediction, error) {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, img)
	}
	return []entity.RawPrediction{{Label: "nevus", Probability: 1}}, nil
}

// MockLimiter implements repository.RateLimiter.
type MockLimiter struct {
	AdmitFunc func(ctx context.Context, clientKey string) (bool, error)

	mu        sync.Mutex
	CallCount int
}

func (m *MockLimiter) Admit(ctx context.Context, clientKey string) (bool, error) {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()

	if m.AdmitFunc != nil {
		return m.AdmitFunc(ctx, clientKey)
	}
	return true, nil
}
