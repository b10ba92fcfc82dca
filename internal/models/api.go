package models

import "resume-screener/internal/scoring"

// ScreenRow is one resume's entry in a screening response, ordered by
// final score descending.
type ScreenRow struct {
	ID       string              `json:"id,omitempty"`
	FileName string              `json:"file_name"`
	Score    scoring.ScoreRecord `json:"score"`
	Similar  *SimilarResume      `json:"similar_resume,omitempty"`
}

// SimilarResume points at a previously screened resume close to this one.
type SimilarResume struct {
	ResultID string  `json:"result_id"`
	FileName string  `json:"file_name"`
	Score    float64 `json:"similarity"`
}

type ScreenResponse struct {
	Results []ScreenRow `json:"results"`
	Skipped []string    `json:"skipped,omitempty"`
}

type SelectionRequest struct {
	ResultID         string  `json:"id" validate:"required,uuid"`
	ManuallySelected bool    `json:"manually_selected"`
	ManualReason     *string `json:"manual_reason,omitempty"`
}

type SelectionResponse struct {
	ID               string  `json:"id"`
	ManuallySelected bool    `json:"manually_selected"`
	ManualReason     *string `json:"manual_reason,omitempty"`
}

type ResultResponse struct {
	ID               string              `json:"id"`
	FileName         string              `json:"file_name"`
	JDText           string              `json:"jd_text"`
	Score            scoring.ScoreRecord `json:"score"`
	ManuallySelected bool                `json:"manually_selected"`
	ManualReason     *string             `json:"manual_reason,omitempty"`
	CreatedAt        string              `json:"created_at"`
}
