package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	"dermascan-core/internal/domain/entity"
)

// HuggingFaceClassifier talks to a hosted image-classification inference
// endpoint that accepts raw image bytes and answers with scored labels, the
// protocol spoken by the model this service fronts.
type HuggingFaceClassifier struct {
	endpoint string
	token    string
	httpc    *http.Client
}

func NewHuggingFaceClassifier(endpoint, token string) *HuggingFaceClassifier {
	return &HuggingFaceClassifier{
		endpoint: endpoint,
		token:    token,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

type scoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *HuggingFaceClassifier) Classify(ctx context.Context, img image.Image) ([]entity.RawPrediction, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode image for upstream: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "image/jpeg")
	// Block on cold starts instead of failing with a transient 503.
	req.Header.Set("X-Wait-For-Model", "true")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call classifier endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier endpoint returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var scores []scoredLabel
	if err := json.Unmarshal(body, &scores); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("classifier endpoint returned no predictions")
	}

	raw := make([]entity.RawPrediction, len(scores))
	for i, s := range scores {
		raw[i] = entity.RawPrediction{Label: s.Label, Probability: s.Score}
	}
	return raw, nil
}
