package services

import (
	"context"
	"fmt"

	"resume-screener/internal/models"
)

const similarityChunkSize = 2000

// SimilarityService indexes screened resumes in a vector store and flags
// near-duplicates among earlier submissions.
type SimilarityService interface {
	// IndexAndFindSimilar embeds the resume, looks up the closest resume
	// already indexed, then adds this one to the index. A nil result with
	// a nil error means nothing scored above the cutoff.
	IndexAndFindSimilar(ctx context.Context, resultID, fileName, text string) (*models.SimilarResume, error)
	// IndexResume replaces any points already stored for the result, so
	// reindexing the same result twice leaves a single point.
	IndexResume(ctx context.Context, resultID, fileName, text string) error
}

type similarityService struct {
	gemini  GeminiService
	qdrant  QdrantService
	chunker TextChunker
	cutoff  float32
}

func NewSimilarityService(gemini GeminiService, qdrant QdrantService, chunker TextChunker, cutoff float32) SimilarityService {
	return &similarityService{
		gemini:  gemini,
		qdrant:  qdrant,
		chunker: chunker,
		cutoff:  cutoff,
	}
}

func (s *similarityService) embed(ctx context.Context, text string) ([]float32, error) {
	// Embed the leading chunk only. Resumes front-load the identifying
	// content, and one vector per resume keeps the index small.
	chunks := s.chunker.ChunkText(text, similarityChunkSize, 0)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no text to embed")
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, chunks[0])
	if err != nil {
		return nil, fmt.Errorf("failed to embed resume: %w", err)
	}
	return embedding, nil
}

func (s *similarityService) IndexAndFindSimilar(ctx context.Context, resultID, fileName, text string) (*models.SimilarResume, error) {
	embedding, err := s.embed(ctx, text)
	if err != nil {
		return nil, err
	}

	nearest, err := s.qdrant.SearchNearest(ctx, embedding, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	if err := s.qdrant.UpsertResume(ctx, resultID, fileName, text, embedding); err != nil {
		return nil, fmt.Errorf("failed to index resume: %w", err)
	}

	if len(nearest) == 0 || nearest[0].Score < s.cutoff {
		return nil, nil
	}

	return &models.SimilarResume{
		ResultID: nearest[0].ResultID,
		FileName: nearest[0].FileName,
		Score:    float64(nearest[0].Score),
	}, nil
}

func (s *similarityService) IndexResume(ctx context.Context, resultID, fileName, text string) error {
	embedding, err := s.embed(ctx, text)
	if err != nil {
		return err
	}
	if err := s.qdrant.DeleteResume(ctx, resultID); err != nil {
		return fmt.Errorf("failed to clear stale points: %w", err)
	}
	if err := s.qdrant.UpsertResume(ctx, resultID, fileName, text, embedding); err != nil {
		return fmt.Errorf("failed to index resume: %w", err)
	}
	return nil
}
