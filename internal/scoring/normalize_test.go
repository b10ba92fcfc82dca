package scoring

import (
	"encoding/json"
	"testing"
)

func TestEnsureSchemaDefaults(t *testing.T) {
	cases := []map[string]any{
		nil,
		{},
		{"candidate_name": nil, "final_score": nil, "penalties": nil, "top_reasons": nil},
	}

	for _, obj := range cases {
		rec := EnsureSchema(obj)

		if rec.CandidateName != nil {
			t.Errorf("expected nil candidate name, got %v", *rec.CandidateName)
		}
		if rec.FinalScore != 0 {
			t.Errorf("expected final score 0, got %v", rec.FinalScore)
		}
		if !rec.HardFilterPass {
			t.Error("expected hard_filter_pass to default to true")
		}
		if rec.SkillCoverage != 0 || rec.ProjectRelevance != 0 || rec.RoleAlignment != 0 || rec.EducationFit != 0 {
			t.Error("expected sub-scores to default to 0")
		}
		if rec.Penalties == nil || len(rec.Penalties) != 0 {
			t.Errorf("expected empty penalties, got %v", rec.Penalties)
		}
		if rec.TopReasons == nil || rec.Risks == nil || rec.EvidenceSnippets == nil {
			t.Error("expected list fields to be empty slices, not nil")
		}
		if rec.Explanation != nil {
			t.Errorf("expected nil explanation, got %v", *rec.Explanation)
		}
	}
}

func TestEnsureSchemaFinalScoreClamping(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"in range", 73.5, 73.5},
		{"above range saturates", 150.0, 100},
		{"negative saturates", -20.0, 0},
		{"numeric string", "88", 88},
		{"numeric string out of range", "250", 100},
		{"unparseable string", "high", 0},
		{"wrong type", []any{"x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := EnsureSchema(map[string]any{"final_score": tt.input})
			if rec.FinalScore != tt.expected {
				t.Errorf("final_score = %v, want %v", rec.FinalScore, tt.expected)
			}
		})
	}
}

func TestEnsureSchemaHardFilterPass(t *testing.T) {
	tests := []struct {
		name     string
		obj      map[string]any
		expected bool
	}{
		{"absent defaults true", map[string]any{}, true},
		{"explicit false", map[string]any{"hard_filter_pass": false}, false},
		{"explicit true", map[string]any{"hard_filter_pass": true}, true},
		{"string false", map[string]any{"hard_filter_pass": "false"}, false},
		{"string true", map[string]any{"hard_filter_pass": "true"}, true},
		{"zero number", map[string]any{"hard_filter_pass": 0.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureSchema(tt.obj).HardFilterPass; got != tt.expected {
				t.Errorf("hard_filter_pass = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEnsureSchemaListCoercion(t *testing.T) {
	rec := EnsureSchema(map[string]any{
		"top_reasons":       []any{"strong Go background", 7.0, true},
		"risks":             "single scalar risk",
		"evidence_snippets": nil,
	})

	wantReasons := []string{"strong Go background", "7", "true"}
	if len(rec.TopReasons) != len(wantReasons) {
		t.Fatalf("top_reasons = %v", rec.TopReasons)
	}
	for i, want := range wantReasons {
		if rec.TopReasons[i] != want {
			t.Errorf("top_reasons[%d] = %q, want %q", i, rec.TopReasons[i], want)
		}
	}

	if len(rec.Risks) != 1 || rec.Risks[0] != "single scalar risk" {
		t.Errorf("risks = %v", rec.Risks)
	}
	if len(rec.EvidenceSnippets) != 0 {
		t.Errorf("evidence_snippets = %v", rec.EvidenceSnippets)
	}
}

func TestEnsureSchemaPenalties(t *testing.T) {
	rec := EnsureSchema(map[string]any{
		"penalties": []any{
			map[string]any{"reason": "missing cloud experience", "points": 10.0},
			map[string]any{"reason": "short tenure", "points": "5"},
			"bare string penalty",
		},
	})

	if len(rec.Penalties) != 3 {
		t.Fatalf("expected 3 penalties, got %v", rec.Penalties)
	}
	if rec.Penalties[0].Reason != "missing cloud experience" || rec.Penalties[0].Points != 10 {
		t.Errorf("penalties[0] = %+v", rec.Penalties[0])
	}
	if rec.Penalties[1].Points != 5 {
		t.Errorf("penalties[1] = %+v", rec.Penalties[1])
	}
	if rec.Penalties[2].Reason != "bare string penalty" || rec.Penalties[2].Points != 0 {
		t.Errorf("penalties[2] = %+v", rec.Penalties[2])
	}
}

func TestEnsureSchemaScalarPenalty(t *testing.T) {
	rec := EnsureSchema(map[string]any{"penalties": "domain mismatch"})

	if len(rec.Penalties) != 1 || rec.Penalties[0].Reason != "domain mismatch" {
		t.Errorf("penalties = %v", rec.Penalties)
	}
}

func TestEnsureSchemaDiscardsUnknownKeys(t *testing.T) {
	var obj map[string]any
	raw := `{"final_score": 42, "confidence": 0.9, "model_notes": ["x"], "hard_filter_pass": true}`
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	rec := EnsureSchema(obj)
	if rec.FinalScore != 42 {
		t.Errorf("final_score = %v", rec.FinalScore)
	}

	// Re-marshal to confirm the schema is closed.
	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var round map[string]any
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := round["confidence"]; ok {
		t.Error("unknown key leaked through normalization")
	}
	if len(round) != 12 {
		t.Errorf("expected 12 schema keys, got %d", len(round))
	}
}

func TestFallbackRecord(t *testing.T) {
	rec := FallbackRecord()

	if rec.FinalScore != 0 {
		t.Errorf("final_score = %v", rec.FinalScore)
	}
	if !rec.HardFilterPass {
		t.Error("expected hard_filter_pass true in fallback")
	}
	if len(rec.TopReasons) != 0 || len(rec.Risks) != 0 || len(rec.EvidenceSnippets) != 0 || len(rec.Penalties) != 0 {
		t.Error("expected fallback list fields to be empty")
	}
}
