package main

import (
	"context"
	"log"
	"os"
	"strings"

	"resume-screener/internal/config"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

// Rebuilds the Qdrant similar-resume index from every screening result
// stored in Postgres. Run after changing the embedding model or wiping
// the collection.
func main() {
	log.Println("🚀 Starting resume reindex...")

	// Load configuration
	cfg := config.Load()
	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	screeningRepo := repositories.NewScreeningRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	similarity := services.NewSimilarityService(
		geminiService,
		qdrantService,
		services.NewTextChunker(),
		float32(cfg.Qdrant.Cutoff),
	)

	results, err := screeningRepo.FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to load screening results: %v", err)
	}
	log.Printf("📄 Found %d screening results to index", len(results))

	ctx := context.Background()

	successCount := 0
	failCount := 0

	for i, result := range results {
		if strings.TrimSpace(result.ResumeText) == "" {
			log.Printf("⚠️  Result %s has no resume text, skipping", result.ID)
			failCount++
			continue
		}

		err := similarity.IndexResume(ctx, result.ID.String(), result.FileName, result.ResumeText)
		if err != nil {
			log.Printf("❌ Failed to index %s: %v", result.FileName, err)
			failCount++
			continue
		}

		successCount++
		if (i+1)%10 == 0 || i == len(results)-1 {
			log.Printf("📊 Progress: %d/%d results indexed", i+1, len(results))
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Successful: %d results", successCount)
	log.Printf("   ❌ Failed: %d results", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some results failed to index. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All results indexed successfully!")
}
