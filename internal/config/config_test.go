package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Screening.MaxBatchFiles != 5 {
		t.Errorf("MaxBatchFiles = %d, want 5", cfg.Screening.MaxBatchFiles)
	}
	if cfg.Screening.Concurrency != 3 {
		t.Errorf("Concurrency = %d, want 3", cfg.Screening.Concurrency)
	}
	if cfg.Screening.MaxPromptChars != 20000 {
		t.Errorf("MaxPromptChars = %d, want 20000", cfg.Screening.MaxPromptChars)
	}
	if cfg.Screening.LowCharThreshold != 200 {
		t.Errorf("LowCharThreshold = %d, want 200", cfg.Screening.LowCharThreshold)
	}
	if cfg.OCR.Language != "eng" {
		t.Errorf("OCR language = %q, want eng", cfg.OCR.Language)
	}
	if cfg.OCR.DPI != 300 {
		t.Errorf("OCR DPI = %d, want 300", cfg.OCR.DPI)
	}
	if cfg.Qdrant.Enabled {
		t.Error("Qdrant should be disabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MAX_BATCH_FILES", "12")
	t.Setenv("SCREEN_CONCURRENCY", "6")
	t.Setenv("LOW_CHAR_THRESHOLD", "150")
	t.Setenv("OCR_TIMEOUT", "30s")
	t.Setenv("QDRANT_ENABLED", "true")
	t.Setenv("SIMILARITY_CUTOFF", "0.8")

	cfg := Load()

	if cfg.Screening.MaxBatchFiles != 12 {
		t.Errorf("MaxBatchFiles = %d, want 12", cfg.Screening.MaxBatchFiles)
	}
	if cfg.Screening.Concurrency != 6 {
		t.Errorf("Concurrency = %d, want 6", cfg.Screening.Concurrency)
	}
	if cfg.Screening.LowCharThreshold != 150 {
		t.Errorf("LowCharThreshold = %d, want 150", cfg.Screening.LowCharThreshold)
	}
	if cfg.OCR.Timeout != 30*time.Second {
		t.Errorf("OCR timeout = %v, want 30s", cfg.OCR.Timeout)
	}
	if !cfg.Qdrant.Enabled {
		t.Error("QDRANT_ENABLED=true not applied")
	}
	if cfg.Qdrant.Cutoff != 0.8 {
		t.Errorf("Cutoff = %v, want 0.8", cfg.Qdrant.Cutoff)
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("MAX_BATCH_FILES", "many")
	t.Setenv("OCR_ENABLED", "definitely")

	cfg := Load()

	if cfg.Screening.MaxBatchFiles != 5 {
		t.Errorf("MaxBatchFiles = %d, want default 5 on junk input", cfg.Screening.MaxBatchFiles)
	}
	if !cfg.OCR.Enabled {
		t.Error("OCR.Enabled should keep its default on junk input")
	}
}
