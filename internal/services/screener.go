package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"resume-screener/internal/extractor"
	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/scoring"
)

// ErrNoValidResumes means no file in the batch yielded any text to score.
var ErrNoValidResumes = errors.New("no valid resumes in batch")

const (
	DefaultMaxBatchFiles = 5
	DefaultConcurrency   = 3
)

// ResumeFile is one uploaded resume held in memory.
type ResumeFile struct {
	Name string
	Data []byte
}

type ScreenerService interface {
	ScreenBatch(ctx context.Context, jdText, preferredSkills string, files []ResumeFile) (*models.ScreenResponse, error)
}

type screenerService struct {
	extractor     extractor.DocumentExtractor
	orchestrator  *scoring.Orchestrator
	screeningRepo repositories.ScreeningRepository
	similarity    SimilarityService
	maxBatchFiles int
	concurrency   int
}

func NewScreenerService(
	docExtractor extractor.DocumentExtractor,
	orchestrator *scoring.Orchestrator,
	screeningRepo repositories.ScreeningRepository,
	similarity SimilarityService,
	maxBatchFiles int,
	concurrency int,
) ScreenerService {
	if maxBatchFiles <= 0 {
		maxBatchFiles = DefaultMaxBatchFiles
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &screenerService{
		extractor:     docExtractor,
		orchestrator:  orchestrator,
		screeningRepo: screeningRepo,
		similarity:    similarity,
		maxBatchFiles: maxBatchFiles,
		concurrency:   concurrency,
	}
}

// ScreenBatch extracts, scores and persists every resume in the batch,
// returning rows sorted by final score descending. Files past the batch
// cap and files that yield no text are reported in Skipped rather than
// failing the whole batch.
func (s *screenerService) ScreenBatch(ctx context.Context, jdText, preferredSkills string, files []ResumeFile) (*models.ScreenResponse, error) {
	var skipped []string

	if len(files) > s.maxBatchFiles {
		log.Printf("⚠️  Batch of %d files exceeds cap of %d, extra files skipped", len(files), s.maxBatchFiles)
		for _, f := range files[s.maxBatchFiles:] {
			skipped = append(skipped, f.Name)
		}
		files = files[:s.maxBatchFiles]
	}

	rows := make([]*models.ScreenRow, len(files))
	skippedByWorker := make([]string, len(files))

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				row, err := s.screenOne(ctx, jdText, preferredSkills, files[i])
				if err != nil {
					log.Printf("❌ Worker #%d skipping %s: %v", workerID, files[i].Name, err)
					skippedByWorker[i] = files[i].Name
					continue
				}
				rows[i] = row
			}
		}(w + 1)
	}

	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("screening cancelled: %w", err)
	}

	response := &models.ScreenResponse{Results: make([]models.ScreenRow, 0, len(files))}
	for i, row := range rows {
		if row == nil {
			if skippedByWorker[i] != "" {
				skipped = append(skipped, skippedByWorker[i])
			}
			continue
		}
		response.Results = append(response.Results, *row)
	}
	response.Skipped = skipped

	if len(response.Results) == 0 {
		return nil, ErrNoValidResumes
	}

	sort.SliceStable(response.Results, func(a, b int) bool {
		return response.Results[a].Score.FinalScore > response.Results[b].Score.FinalScore
	})

	return response, nil
}

func (s *screenerService) screenOne(ctx context.Context, jdText, preferredSkills string, file ResumeFile) (*models.ScreenRow, error) {
	text, err := s.extractor.Extract(ctx, file.Data, file.Name)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	if text == "" {
		return nil, fmt.Errorf("no text extracted")
	}

	log.Printf("📄 Extracted %d chars from %s", len(text), file.Name)

	record := s.orchestrator.Score(ctx, jdText, text, preferredSkills)

	// The batch CLI runs without a database.
	if s.screeningRepo == nil {
		return &models.ScreenRow{FileName: file.Name, Score: record}, nil
	}

	result := models.NewScreeningResult(jdText, file.Name, text, record)
	if err := s.screeningRepo.Create(result); err != nil {
		// Scoring already succeeded, so surface the row without an ID
		// instead of dropping the candidate.
		log.Printf("⚠️  Failed to persist result for %s: %v", file.Name, err)
		return &models.ScreenRow{FileName: file.Name, Score: record}, nil
	}

	row := &models.ScreenRow{
		ID:       result.ID.String(),
		FileName: file.Name,
		Score:    record,
	}

	if s.similarity != nil {
		similar, err := s.similarity.IndexAndFindSimilar(ctx, result.ID.String(), file.Name, text)
		if err != nil {
			log.Printf("⚠️  Similarity lookup failed for %s: %v", file.Name, err)
		} else {
			row.Similar = similar
		}
	}

	return row, nil
}
