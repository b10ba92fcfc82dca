package scoring

// Penalty is one scoring deduction with its reason.
type Penalty struct {
	Reason string  `json:"reason"`
	Points float64 `json:"points"`
}

// ScoreRecord is the closed, always-valid output schema of the scoring
// subsystem. Every field is present and type-correct regardless of what the
// upstream model returned; absent or malformed inputs normalize to the
// documented defaults, never to omission.
type ScoreRecord struct {
	CandidateName    *string   `json:"candidate_name"`
	FinalScore       float64   `json:"final_score"`
	HardFilterPass   bool      `json:"hard_filter_pass"`
	SkillCoverage    float64   `json:"skill_coverage"`
	ProjectRelevance float64   `json:"project_relevance"`
	RoleAlignment    float64   `json:"role_alignment"`
	EducationFit     float64   `json:"education_fit"`
	Penalties        []Penalty `json:"penalties"`
	TopReasons       []string  `json:"top_reasons"`
	Risks            []string  `json:"risks"`
	EvidenceSnippets []string  `json:"evidence_snippets"`
	Explanation      *string   `json:"explanation"`
}
