package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/scoring"
)

// ScreeningResult is one screened resume persisted for later review.
// List-valued score fields are flattened to text columns: penalties as a
// JSON array, the string lists joined with "|".
type ScreeningResult struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JDText           string    `gorm:"type:text" json:"jd_text"`
	FileName         string    `gorm:"type:text" json:"file_name"`
	CandidateName    *string   `gorm:"type:text" json:"candidate_name,omitempty"`
	ResumeText       string    `gorm:"type:text" json:"resume_text"`
	FinalScore       float64   `gorm:"type:decimal(5,2);not null;default:0" json:"final_score"`
	HardFilterPass   bool      `gorm:"not null;default:true" json:"hard_filter_pass"`
	SkillCoverage    float64   `gorm:"type:decimal(5,2);not null;default:0" json:"skill_coverage"`
	ProjectRelevance float64   `gorm:"type:decimal(5,2);not null;default:0" json:"project_relevance"`
	RoleAlignment    float64   `gorm:"type:decimal(5,2);not null;default:0" json:"role_alignment"`
	EducationFit     float64   `gorm:"type:decimal(5,2);not null;default:0" json:"education_fit"`
	Penalties        string    `gorm:"type:text" json:"penalties"`
	TopReasons       string    `gorm:"type:text" json:"top_reasons"`
	Risks            string    `gorm:"type:text" json:"risks"`
	EvidenceSnippets string    `gorm:"type:text" json:"evidence_snippets"`
	Explanation      *string   `gorm:"type:text" json:"explanation,omitempty"`
	ManuallySelected bool      `gorm:"not null;default:false" json:"manually_selected"`
	ManualReason     *string   `gorm:"type:text" json:"manual_reason,omitempty"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ScreeningResult) TableName() string {
	return "screening_results"
}

const listSeparator = "|"

// NewScreeningResult flattens a score record into a row ready to persist.
func NewScreeningResult(jdText, fileName, resumeText string, record scoring.ScoreRecord) *ScreeningResult {
	penalties, err := json.Marshal(record.Penalties)
	if err != nil {
		penalties = []byte("[]")
	}

	return &ScreeningResult{
		JDText:           jdText,
		FileName:         fileName,
		CandidateName:    record.CandidateName,
		ResumeText:       resumeText,
		FinalScore:       record.FinalScore,
		HardFilterPass:   record.HardFilterPass,
		SkillCoverage:    record.SkillCoverage,
		ProjectRelevance: record.ProjectRelevance,
		RoleAlignment:    record.RoleAlignment,
		EducationFit:     record.EducationFit,
		Penalties:        string(penalties),
		TopReasons:       strings.Join(record.TopReasons, listSeparator),
		Risks:            strings.Join(record.Risks, listSeparator),
		EvidenceSnippets: strings.Join(record.EvidenceSnippets, listSeparator),
		Explanation:      record.Explanation,
	}
}

// ScoreRecord rebuilds the structured record from the flattened columns.
func (r *ScreeningResult) ScoreRecord() scoring.ScoreRecord {
	var penalties []scoring.Penalty
	if err := json.Unmarshal([]byte(r.Penalties), &penalties); err != nil || penalties == nil {
		penalties = []scoring.Penalty{}
	}

	return scoring.ScoreRecord{
		CandidateName:    r.CandidateName,
		FinalScore:       r.FinalScore,
		HardFilterPass:   r.HardFilterPass,
		SkillCoverage:    r.SkillCoverage,
		ProjectRelevance: r.ProjectRelevance,
		RoleAlignment:    r.RoleAlignment,
		EducationFit:     r.EducationFit,
		Penalties:        penalties,
		TopReasons:       splitList(r.TopReasons),
		Risks:            splitList(r.Risks),
		EvidenceSnippets: splitList(r.EvidenceSnippets),
		Explanation:      r.Explanation,
	}
}

func splitList(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, listSeparator)
}
