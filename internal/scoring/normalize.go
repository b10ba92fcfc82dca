package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// EnsureSchema coerces an arbitrary decoded JSON object into a ScoreRecord.
// It is total: any input, including nil, yields a fully populated record.
// Unknown keys are discarded; the schema is closed.
func EnsureSchema(obj map[string]any) ScoreRecord {
	return ScoreRecord{
		CandidateName:    coerceOptionalString(obj["candidate_name"]),
		FinalScore:       clamp(coerceNumber(obj["final_score"], 0), 0, 100),
		HardFilterPass:   coerceBool(obj["hard_filter_pass"]),
		SkillCoverage:    coerceNumber(obj["skill_coverage"], 0),
		ProjectRelevance: coerceNumber(obj["project_relevance"], 0),
		RoleAlignment:    coerceNumber(obj["role_alignment"], 0),
		EducationFit:     coerceNumber(obj["education_fit"], 0),
		Penalties:        coercePenalties(obj["penalties"]),
		TopReasons:       coerceStringList(obj["top_reasons"]),
		Risks:            coerceStringList(obj["risks"]),
		EvidenceSnippets: coerceStringList(obj["evidence_snippets"]),
		Explanation:      coerceOptionalString(obj["explanation"]),
	}
}

// FallbackRecord is the terminal zero-score record returned when the model
// never produced a parseable response.
func FallbackRecord() ScoreRecord {
	return EnsureSchema(map[string]any{"final_score": 0})
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func coerceNumber(v any, def float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// coerceBool is optimistic: a candidate is not filtered out merely because
// the field was omitted or came back in an unexpected shape.
func coerceBool(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower != "false" && lower != "no" && lower != "0" && lower != ""
	case float64:
		return val != 0
	default:
		return true
	}
}

func coerceOptionalString(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return &val
	default:
		s := stringForm(val)
		return &s
	}
}

func coerceStringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, stringForm(item))
		}
		return out
	default:
		return []string{stringForm(val)}
	}
}

func coercePenalties(v any) []Penalty {
	if v == nil {
		return []Penalty{}
	}

	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}

	out := make([]Penalty, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Penalty{
				Reason: stringForm(m["reason"]),
				Points: coerceNumber(m["points"], 0),
			})
			continue
		}
		out = append(out, Penalty{Reason: stringForm(item), Points: 0})
	}
	return out
}

func stringForm(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
