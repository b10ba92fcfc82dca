package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"resume-screener/internal/extractor"
	"resume-screener/internal/scoring"
	"resume-screener/internal/services"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Screening ScreeningConfig
	OCR       OCRConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	// Enabled turns the similar-resume index on. Screening works without
	// it.
	Enabled bool
	Cutoff  float64
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type ScreeningConfig struct {
	MaxBatchFiles    int
	Concurrency      int
	MaxPromptChars   int
	LowCharThreshold int
}

type OCRConfig struct {
	Enabled   bool
	Language  string
	Pdftoppm  string
	Tesseract string
	DPI       int
	Timeout   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_screener"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "screened_resumes"),
			Enabled:    getEnvAsBool("QDRANT_ENABLED", false),
			Cutoff:     getEnvAsFloat("SIMILARITY_CUTOFF", 0.92),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvAsDuration("LLM_TIMEOUT", "90s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Screening: ScreeningConfig{
			MaxBatchFiles:    getEnvAsInt("MAX_BATCH_FILES", services.DefaultMaxBatchFiles),
			Concurrency:      getEnvAsInt("SCREEN_CONCURRENCY", services.DefaultConcurrency),
			MaxPromptChars:   getEnvAsInt("MAX_PROMPT_CHARS", scoring.DefaultMaxChars),
			LowCharThreshold: getEnvAsInt("LOW_CHAR_THRESHOLD", extractor.DefaultLowCharThreshold),
		},
		OCR: OCRConfig{
			Enabled:   getEnvAsBool("OCR_ENABLED", true),
			Language:  getEnv("OCR_LANGUAGE", extractor.DefaultOCRLanguage),
			Pdftoppm:  getEnv("PDFTOPPM_PATH", "pdftoppm"),
			Tesseract: getEnv("TESSERACT_PATH", "tesseract"),
			DPI:       getEnvAsInt("OCR_DPI", 300),
			Timeout:   getEnvAsDuration("OCR_TIMEOUT", "60s"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
