package scoring

import (
	"fmt"
	"strings"
)

// DefaultMaxChars is the per-side character cap applied to the job
// description and resume text before framing the scoring call.
const DefaultMaxChars = 20000

const systemPrompt = "You are an ATS evaluator and Subject Matter Expert (SME) for the given Job Description (JD). " +
	"You will evaluate candidates based on their resume text against the JD. " +
	"Return JSON only. No extra text."

const basePrompt = `Analyze the Job Description (JD) and Resume carefully. Follow these steps:
1. Understand the JD completely:
   - Extract the core business need (what the role helps the client achieve).
   - Identify required years of experience, technical requirements, soft skills, and domain.
2. Extract the candidate name from the resume if present
3. Compare JD vs Resume:
   - Skill coverage: match resume skills against JD requirements.
   - Project relevance: check if projects align with JD business need.
   - Role alignment: does candidate's experience level fit JD (lead vs junior)?
   - Education fit.
4. Compute a final score (0-100) considering all above factors.
5. Provide explanations:
   - First, clearly state the required experience vs candidate experience.
   - Then explain which skills, projects, or experience influenced the score (both positive and negative).
   - If score decreased, explain why (missing skills, domain mismatch, lack of leadership, etc.).
6. Identify penalties for major gaps.
7. Return STRICT JSON only in this schema:
{"candidate_name": string|null, "final_score": number, "hard_filter_pass": boolean, "skill_coverage": number|null, "project_relevance": number|null, "role_alignment": number|null, "education_fit": number|null, "penalties": array, "top_reasons": array, "risks": array, "evidence_snippets": array, "explanation": string}.
Important:
- Do not include any text outside the JSON.
- If unsure, set numeric fields to 0 and arrays to [].`

const strictDirective = "Return JSON with ALL required keys exactly as specified; do not add or omit keys. " +
	"If unsure, set numeric fields to 0 and arrays to []. " +
	"Ensure the explanation clearly states why the candidate scored high or low (mention skills, projects, experience that influenced the score). " +
	"Ensure the explanation starts with the experience check (required vs actual) and then the reasoning for score adjustments."

// ScoringRequest is a framed (job description, resume) pair, both sides
// independently length-capped. Built fresh per resume.
type ScoringRequest struct {
	JobDescription string
	ResumeText     string
}

type RequestBuilder struct {
	maxChars int
}

func NewRequestBuilder(maxChars int) *RequestBuilder {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &RequestBuilder{maxChars: maxChars}
}

// Truncate applies the hard character cutoff. No word-boundary awareness:
// truncation mid-word is accepted.
func (b *RequestBuilder) Truncate(text string) string {
	if len(text) > b.maxChars {
		return text[:b.maxChars]
	}
	return text
}

// Build truncates both sides and, when preferred skills are supplied,
// appends them to the job-description side as a labeled section. The base
// job description is truncated first and the skills block appended after, so
// the effective JD side can exceed the cap; explicitly supplied skills are
// never cut.
func (b *RequestBuilder) Build(jobDescription, resumeText, preferredSkills string) ScoringRequest {
	jd := b.Truncate(jobDescription)
	if strings.TrimSpace(preferredSkills) != "" {
		jd = fmt.Sprintf("%s\n\nPREFERRED SKILLS:\n%s", jd, preferredSkills)
	}
	return ScoringRequest{
		JobDescription: jd,
		ResumeText:     b.Truncate(resumeText),
	}
}

// userPrompt frames one scoring attempt. The strict retry carries an extra
// directive demanding complete, default-filled JSON.
func userPrompt(req ScoringRequest, strict bool) string {
	prompt := fmt.Sprintf("<JD>\n%s\n</JD>\n<RESUME>\n%s\n</RESUME>\n%s",
		req.JobDescription, req.ResumeText, basePrompt)
	if strict {
		prompt += "\n" + strictDirective
	}
	return prompt
}
