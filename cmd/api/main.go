package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resume-screener/internal/config"
	"resume-screener/internal/extractor"
	"resume-screener/internal/handlers"
	"resume-screener/internal/repositories"
	"resume-screener/internal/scoring"
	"resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required")
	}

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	screeningRepo := repositories.NewScreeningRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	ocrClient := extractor.NewOCRClient(extractor.OCRConfig{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		DPI:       cfg.OCR.DPI,
		Timeout:   cfg.OCR.Timeout,
	})
	docExtractor := extractor.NewDocumentExtractor(extractor.Options{
		OCREnabled:       cfg.OCR.Enabled,
		OCRLanguage:      cfg.OCR.Language,
		LowCharThreshold: cfg.Screening.LowCharThreshold,
	}, ocrClient)
	log.Println("✅ Document extractor initialized")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	orchestrator := scoring.NewOrchestrator(
		geminiService,
		scoring.NewRequestBuilder(cfg.Screening.MaxPromptChars),
	)

	// The similar-resume index is optional. Without Qdrant the screening
	// pipeline runs unchanged, responses just omit similar_resume.
	var similarityService services.SimilarityService
	if cfg.Qdrant.Enabled {
		qdrantService, err := services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qdrantService.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		similarityService = services.NewSimilarityService(
			geminiService,
			qdrantService,
			services.NewTextChunker(),
			float32(cfg.Qdrant.Cutoff),
		)
		log.Println("✅ Qdrant initialized successfully")
	}

	screenerService := services.NewScreenerService(
		docExtractor,
		orchestrator,
		screeningRepo,
		similarityService,
		cfg.Screening.MaxBatchFiles,
		cfg.Screening.Concurrency,
	)
	log.Println("✅ Screener service initialized")

	// Initialize Handlers
	screenHandler := handlers.NewScreenHandler(
		screenerService,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	selectionHandler := handlers.NewSelectionHandler(screeningRepo)
	resultHandler := handlers.NewResultHandler(screeningRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * (cfg.Screening.MaxBatchFiles + 1),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/screen", screenHandler.HandleScreen)
	api.Post("/selection", selectionHandler.HandleSelection)
	api.Get("/result/:id", resultHandler.HandleGetResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/screen",
				"POST /api/v1/selection",
				"GET /api/v1/result/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
