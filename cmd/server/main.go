package main

import (
	"context"
	"image"
	"log"
	"time"

	"dermascan-core/internal/adapter/api"
	"dermascan-core/internal/adapter/client"
	"dermascan-core/internal/adapter/store"
	"dermascan-core/internal/adapter/upload"
	"dermascan-core/internal/config"
	"dermascan-core/internal/domain/entity"
	"dermascan-core/internal/domain/repository"
	"dermascan-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	ctx := context.Background()
	cfg := config.Load()

	// Admission control: Redis-backed when several instances must share one
	// budget, in-process sliding window otherwise.
	var limiter repository.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		limiter = store.NewRedisLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow)
		log.Printf("[LIMITER] sharing admission budget via Redis at %s", cfg.RedisAddr)
	} else {
		limiter = store.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	validator, err := upload.NewValidator(cfg.UploadDir, int64(cfg.MaxUploadMB)<<20)
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	taxonomy := entity.DefaultTaxonomy()

	primary := client.NewHuggingFaceClassifier(cfg.ClassifierURL, cfg.ClassifierToken)

	var fallback repository.LesionClassifier
	if cfg.GoogleProject != "" {
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			Project:  cfg.GoogleProject,
			Location: cfg.GoogleLocation,
			Backend:  genai.BackendVertexAI,
		})
		if err != nil {
			log.Fatalf("failed to init genai client: %v", err)
		}
		fallback = client.NewGeminiClassifierFromClient(genaiClient, cfg.GeminiModel, taxonomy.Keys())
	} else {
		log.Println("[RELIABILITY] no fallback classifier configured (GOOGLE_CLOUD_PROJECT unset)")
	}

	classifier := usecase.NewResilientClassifier(primary, fallback)
	aggregator := usecase.NewAggregator(taxonomy)

	// Inject the adapters into the Orchestration Layer
	orchestrator := usecase.NewOrchestrator(limiter, validator, classifier, aggregator, cfg.TopK)

	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Wake the model instance so the first real request does not pay
		// the cold-start penalty. The prediction itself is discarded.
		if _, err := classifier.Classify(warmCtx, warmupImage()); err != nil {
			log.Printf("[WARMER] classifier warm-up failed: %v", err)
			return
		}
		log.Println("[WARMER] Pre-warm complete. Classifier is HOT.")
	}()

	// Initialize API Layer (Delivery Layer)
	app := fiber.New(fiber.Config{
		AppName:      "Dermascan Core",
		BodyLimit:    cfg.MaxUploadMB << 20,
		ErrorHandler: api.NewErrorHandler(cfg.MaxUploadMB),
	})

	handler := api.NewPredictHandler(orchestrator, cfg.MaxUploadMB)
	api.SetupRouter(app, handler)

	// Start Server
	log.Printf("Dermascan Core running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// warmupImage builds a small neutral gray square.
func warmupImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	return img
}
