package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dermascan-core/internal/adapter/client"
	"dermascan-core/internal/testutil"
)

func TestHuggingFaceClassifier_ParsesScoredLabels(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"label":"melanoma","score":0.62},{"label":"nevus","score":0.38}]`))
	}))
	defer srv.Close()

	c := client.NewHuggingFaceClassifier(srv.URL, "secret-token")
	raw, err := c.Classify(context.Background(), testutil.TestImage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(raw) != 2 {
		t.Fatalf("got %d predictions, want 2", len(raw))
	}
	if raw[0].Label != "melanoma" || raw[0].Probability != 0.62 {
		t.Errorf("unexpected first prediction: %+v", raw[0])
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotContentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", gotContentType)
	}
}

func TestHuggingFaceClassifier_OmitsAuthWithoutToken(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`[{"label":"nevus","score":1.0}]`))
	}))
	defer srv.Close()

	c := client.NewHuggingFaceClassifier(srv.URL, "")
	if _, err := c.Classify(context.Background(), testutil.TestImage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawAuth {
		t.Error("no Authorization header expected without a token")
	}
}

func TestHuggingFaceClassifier_SurfacesUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Model is currently loading"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := client.NewHuggingFaceClassifier(srv.URL, "")
	_, err := c.Classify(context.Background(), testutil.TestImage())
	if err == nil {
		t.Fatal("expected an error for a 503 response")
	}
	// The status code in the message is what marks the error retryable.
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should carry the upstream status: %v", err)
	}
}

func TestHuggingFaceClassifier_RejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not json"))
	}))
	defer srv.Close()

	c := client.NewHuggingFaceClassifier(srv.URL, "")
	if _, err := c.Classify(context.Background(), testutil.TestImage()); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestHuggingFaceClassifier_RejectsEmptyDistribution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := client.NewHuggingFaceClassifier(srv.URL, "")
	if _, err := c.Classify(context.Background(), testutil.TestImage()); err == nil {
		t.Fatal("expected an error for an empty distribution")
	}
}
