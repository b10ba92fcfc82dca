package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Generator is the opaque text-generation collaborator. Implementations may
// omit keys, add extra keys, wrap JSON in formatting markers, or fail
// outright; the orchestrator assumes nothing beyond this contract.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Orchestrator drives the scoring call with a strict-retry escalation:
// first a cheap attempt with the base prompt, then exactly one retry with
// the strict-schema directive, then a terminal zero-score fallback. It is a
// total function from (job description, resume) to ScoreRecord and never
// returns an error to its caller.
type Orchestrator struct {
	generator Generator
	builder   *RequestBuilder
}

func NewOrchestrator(generator Generator, builder *RequestBuilder) *Orchestrator {
	if builder == nil {
		builder = NewRequestBuilder(DefaultMaxChars)
	}
	return &Orchestrator{generator: generator, builder: builder}
}

// Score produces a normalized ScoreRecord for one resume.
func (o *Orchestrator) Score(ctx context.Context, jobDescription, resumeText, preferredSkills string) ScoreRecord {
	req := o.builder.Build(jobDescription, resumeText, preferredSkills)

	obj, err := o.attempt(ctx, userPrompt(req, false))
	if err == nil {
		if _, ok := obj["final_score"]; ok {
			return EnsureSchema(obj)
		}
		log.Println("⚠️  Scoring response missing final_score, escalating to strict retry")
	} else {
		log.Printf("⚠️  First scoring attempt failed: %v", err)
	}

	// The strict retry succeeds on any parse; normalization repairs gaps.
	obj, err = o.attempt(ctx, userPrompt(req, true))
	if err == nil {
		return EnsureSchema(obj)
	}
	log.Printf("❌ Strict scoring retry failed, returning fallback record: %v", err)

	return FallbackRecord()
}

func (o *Orchestrator) attempt(ctx context.Context, user string) (map[string]any, error) {
	raw, err := o.generator.Generate(ctx, systemPrompt, user)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &v); err != nil {
		return nil, fmt.Errorf("parse scoring response: %w", err)
	}

	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case []any:
		// Some models wrap the object in a single-element array.
		if len(t) > 0 {
			if m, ok := t[0].(map[string]any); ok {
				return m, nil
			}
		}
	}
	return nil, errors.New("scoring response is not a JSON object")
}

// stripCodeFence removes a leading fenced code block marker line and any
// trailing marker before the JSON parse is attempted.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
