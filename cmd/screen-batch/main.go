package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"resume-screener/internal/config"
	"resume-screener/internal/extractor"
	"resume-screener/internal/models"
	"resume-screener/internal/scoring"
	"resume-screener/internal/services"
)

// screen-batch scores a directory of resumes against a job description
// and writes scores.jsonl and scores.csv to the output directory, sorted
// by final score descending. It talks to Gemini only, no database needed.
func main() {
	jdPath := flag.String("jd", "", "path to the job description text file")
	resumeDir := flag.String("resumes", "", "directory of resume files")
	skills := flag.String("skills", "", "comma separated preferred skills")
	outDir := flag.String("out", ".", "output directory")
	maxFiles := flag.Int("max-files", 0, "cap on files per run, 0 uses the configured default")
	flag.Parse()

	if *jdPath == "" || *resumeDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required")
	}

	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		log.Fatalf("❌ Failed to read job description: %v", err)
	}
	jdText := strings.TrimSpace(string(jdBytes))
	if jdText == "" {
		log.Fatal("❌ Job description is empty")
	}

	files, err := loadResumes(*resumeDir)
	if err != nil {
		log.Fatalf("❌ Failed to load resumes: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("❌ No supported resume files in %s", *resumeDir)
	}
	log.Printf("📄 Loaded %d resume files from %s", len(files), *resumeDir)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
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

	orchestrator := scoring.NewOrchestrator(
		geminiService,
		scoring.NewRequestBuilder(cfg.Screening.MaxPromptChars),
	)

	batchCap := cfg.Screening.MaxBatchFiles
	if *maxFiles > 0 {
		batchCap = *maxFiles
	}

	screener := services.NewScreenerService(
		docExtractor,
		orchestrator,
		nil,
		nil,
		batchCap,
		cfg.Screening.Concurrency,
	)

	response, err := screener.ScreenBatch(context.Background(), jdText, *skills, files)
	if err != nil {
		log.Fatalf("❌ Screening failed: %v", err)
	}
	for _, name := range response.Skipped {
		log.Printf("⚠️  Skipped %s", name)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("❌ Failed to create output directory: %v", err)
	}
	if err := writeJSONL(filepath.Join(*outDir, "scores.jsonl"), response.Results); err != nil {
		log.Fatalf("❌ Failed to write scores.jsonl: %v", err)
	}
	if err := writeCSV(filepath.Join(*outDir, "scores.csv"), response.Results); err != nil {
		log.Fatalf("❌ Failed to write scores.csv: %v", err)
	}

	log.Printf("✅ Scored %d resumes, results written to %s", len(response.Results), *outDir)
}

func loadResumes(dir string) ([]services.ResumeFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []services.ResumeFile
	for _, entry := range entries {
		if entry.IsDir() || !extractor.SupportedFile(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		files = append(files, services.ResumeFile{Name: entry.Name(), Data: data})
	}

	sort.Slice(files, func(a, b int) bool { return files[a].Name < files[b].Name })
	return files, nil
}

func writeJSONL(path string, rows []models.ScreenRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, row := range rows {
		line := map[string]interface{}{
			"file_name": row.FileName,
		}
		scoreJSON, err := json.Marshal(row.Score)
		if err != nil {
			return err
		}
		var score map[string]interface{}
		if err := json.Unmarshal(scoreJSON, &score); err != nil {
			return err
		}
		for k, v := range score {
			line[k] = v
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, rows []models.ScreenRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"file_name", "candidate_name", "final_score", "hard_filter_pass",
		"skill_coverage", "project_relevance", "role_alignment", "education_fit",
		"top_reasons", "risks",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		name := ""
		if row.Score.CandidateName != nil {
			name = *row.Score.CandidateName
		}
		record := []string{
			row.FileName,
			name,
			formatScore(row.Score.FinalScore),
			strconv.FormatBool(row.Score.HardFilterPass),
			formatScore(row.Score.SkillCoverage),
			formatScore(row.Score.ProjectRelevance),
			formatScore(row.Score.RoleAlignment),
			formatScore(row.Score.EducationFit),
			strings.Join(row.Score.TopReasons, "; "),
			strings.Join(row.Score.Risks, "; "),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
