package main

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin/binding"
	"github.com/justsurfingit/jobly/internal/config"
	"github.com/justsurfingit/jobly/internal/database"
	"github.com/justsurfingit/jobly/internal/handlers"
	"github.com/justsurfingit/jobly/internal/services"
)

func main() {
	// 1. Load configuration (.env is optional)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Database connection and migrations
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}

	// 3. Core services
	deps := handlers.Deps{
		Config:    cfg,
		Companies: services.NewCompanyService(db),
		Jobs:      services.NewJobService(db),
		Users:     services.NewUserService(db, cfg.BcryptWorkFactor),
	}

	// 4. Job extraction is optional
	llmService, err := services.NewLLMService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	switch {
	case errors.Is(err, services.ErrLLMDisabled):
		log.Println("⚠️  GEMINI_API_KEY not set, POST /jobs/extract is disabled")
	case err != nil:
		log.Printf("⚠️  Failed to create Gemini client: %v", err)
	default:
		deps.Extractor = llmService
		log.Println("✅ Gemini client ready")
	}

	// 5. Router; request bodies may only carry the fields their DTO declares
	binding.EnableDecoderDisallowUnknownFields = true
	r := handlers.NewRouter(deps)

	log.Printf("🚀 Server starting on %s...", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
