// Package config centralizes every runtime knob. Values come from the
// environment (optionally seeded from a .env file by the caller) and fall
// back to documented defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	MaxUploadMB int
	UploadDir   string
	TopK        int

	RateLimitMax    int
	RateLimitWindow time.Duration

	ClassifierURL   string
	ClassifierToken string

	GoogleProject  string
	GoogleLocation string
	GeminiModel    string

	RedisAddr string
}

const defaultClassifierURL = "https://api-inference.huggingface.co/models/Anwarkh1/Skin_Cancer-Image_Classification"

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 10),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		TopK:        getEnvInt("PREDICT_TOP_K", 5),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 20),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		ClassifierURL:   getEnv("HF_API_URL", defaultClassifierURL),
		ClassifierToken: getEnv("HF_API_TOKEN", ""),

		GoogleProject:  getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleLocation: getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
