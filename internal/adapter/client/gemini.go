package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"google.golang.org/genai"

	"dermascan-core/internal/domain/entity"
)

// GeminiClassifier is the fallback classification tier: a multimodal model
// constrained to score the fixed lesion vocabulary when the dedicated
// upstream is unavailable.
type GeminiClassifier struct {
	client     *genai.Client
	model      string
	vocabulary []string
}

func NewGeminiClassifier(ctx context.Context, projectID, location, model string, vocabulary []string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClassifier{client: client, model: model, vocabulary: vocabulary}, nil
}

func NewGeminiClassifierFromClient(c *genai.Client, model string, vocabulary []string) *GeminiClassifier {
	return &GeminiClassifier{
		client:     c,
		model:      model,
		vocabulary: vocabulary,
	}
}

func (g *GeminiClassifier) Classify(ctx context.Context, img image.Image) ([]entity.RawPrediction, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode image for fallback: %w", err)
	}

	// The response is constrained to a flat JSON object over the fixed
	// label vocabulary.
	instruction := fmt.Sprintf(
		"You are a dermoscopic image classifier. Assign a probability to every one of these categories for the lesion in the image: %s. "+
			"Respond ONLY with a flat JSON object mapping each category to its probability. The probabilities must sum to 1. Do not explain.",
		strings.Join(g.vocabulary, ", "))

	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: buf.Bytes()}},
			{Text: instruction},
		},
	}}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	var dist map[string]float64
	if err := json.Unmarshal([]byte(result.Text()), &dist); err != nil {
		return nil, fmt.Errorf("fallback returned a malformed distribution: %w", err)
	}
	if len(dist) == 0 {
		return nil, fmt.Errorf("fallback returned an empty distribution")
	}

	raw := make([]entity.RawPrediction, 0, len(dist))
	for label, p := range dist {
		raw = append(raw, entity.RawPrediction{Label: label, Probability: p})
	}
	return raw, nil
}
