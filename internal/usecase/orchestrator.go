package usecase

import (
	"context"
	"fmt"
	"log"

	"dermascan-core/internal/domain/entity"
	"dermascan-core/internal/domain/repository"
)

// Orchestrator runs the prediction pipeline end to end. Steps are strictly
// sequential per request; the deferred artifact removal is the one step that
// runs on every exit path after the upload touched disk.
type Orchestrator struct {
	limiter    repository.RateLimiter
	validator  repository.UploadValidator
	classifier repository.LesionClassifier
	aggregator *Aggregator
	topK       int
}

func NewOrchestrator(rl repository.RateLimiter, uv repository.UploadValidator, lc repository.LesionClassifier, agg *Aggregator, topK int) *Orchestrator {
	return &Orchestrator{limiter: rl, validator: uv, classifier: lc, aggregator: agg, topK: topK}
}

func (u *Orchestrator) Execute(ctx context.Context, req entity.InferenceRequest) (*entity.PredictionSet, error) {
	// 1. Admission Control
	allowed, err := u.limiter.Admit(ctx, req.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("rate limiter check failed: %w", err)
	}
	if !allowed {
		return nil, entity.ErrRateLimited
	}

	// 2. Upload Validation
	// The artifact lives exactly as long as this call.
	artifact, err := u.validator.Validate(req.Data, req.Filename, req.MIMEType)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := artifact.Remove(); err != nil {
			log.Printf("[PIPELINE] failed to remove artifact %s: %v", artifact.ID, err)
		}
	}()

	// 3. External Classification
	// Upstream detail is logged here and never reaches the caller.
	raw, err := u.classifier.Classify(ctx, artifact.Image)
	if err != nil {
		log.Printf("[PIPELINE] classification failed for artifact %s: %v", artifact.ID, err)
		return nil, entity.ErrInference
	}
	if len(raw) == 0 {
		log.Printf("[PIPELINE] classifier returned an empty distribution for artifact %s", artifact.ID)
		return nil, entity.ErrInference
	}

	// 4. Ranking and Clinical Annotation
	return u.aggregator.Aggregate(raw, u.topK), nil
}
