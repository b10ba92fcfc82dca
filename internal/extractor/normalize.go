package extractor

import (
	"regexp"
	"strings"
)

var (
	crTabRuns  = regexp.MustCompile(`[\r\t]+`)
	spaceRuns  = regexp.MustCompile(`\s+`)
	hyphenWrap = regexp.MustCompile(`([A-Za-z])-\n([A-Za-z])`)
)

// CleanWhitespace normalizes a block of extracted text. Null bytes become
// spaces (dropping them outright would glue adjacent words together), runs of
// carriage returns and tabs collapse to a single space, then any remaining
// whitespace run collapses to a single space.
func CleanWhitespace(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\x00", " ")
	text = crTabRuns.ReplaceAllString(text, " ")
	text = spaceRuns.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// RepairHyphenation undoes PDF line-wrap hyphenation: a letter, a hyphen, a
// line break and a following letter join into the two letters. Must run
// before CleanWhitespace, which destroys the newline this rule matches on.
func RepairHyphenation(text string) string {
	return hyphenWrap.ReplaceAllString(text, "$1$2")
}
