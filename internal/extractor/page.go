package extractor

import (
	"strings"
	"unicode"
)

// NonWhitespaceCount returns the number of characters in text that are not
// whitespace.
func NonWhitespaceCount(text string) int {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// IsLowConfidence reports whether a page's extracted text falls below the
// non-whitespace character floor. Such a page is presumed to be a scanned
// image or an extraction failure rather than a genuinely short page; a false
// positive only costs an unnecessary OCR pass, which still yields usable
// text.
func IsLowConfidence(pageText string, threshold int) bool {
	return NonWhitespaceCount(pageText) < threshold
}

// StripRepeatedLines removes running headers and footers. If the most common
// first line across non-empty pages appears on strictly more than half of
// them, it is treated as a running header and stripped from every page whose
// first line matches exactly; the most common last line is handled the same
// way as a running footer. Documents where headers vary, or where no line
// reaches a majority, are left untouched.
func StripRepeatedLines(pages []string) []string {
	if len(pages) == 0 {
		return pages
	}

	var firstLines, lastLines []string
	for _, p := range pages {
		if strings.TrimSpace(p) == "" {
			continue
		}
		lines := strings.Split(p, "\n")
		firstLines = append(firstLines, strings.TrimSpace(lines[0]))
		lastLines = append(lastLines, strings.TrimSpace(lines[len(lines)-1]))
	}

	header := majorityLine(firstLines)
	footer := majorityLine(lastLines)
	if header == "" && footer == "" {
		return pages
	}

	result := make([]string, len(pages))
	for i, p := range pages {
		lines := strings.Split(p, "\n")
		if header != "" && len(lines) > 0 && strings.TrimSpace(lines[0]) == header {
			lines = lines[1:]
		}
		if footer != "" && len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == footer {
			lines = lines[:len(lines)-1]
		}
		result[i] = strings.Join(lines, "\n")
	}
	return result
}

// majorityLine returns the most common non-blank line if it appears on
// strictly more than half of the pages, otherwise "".
func majorityLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	counts := make(map[string]int, len(lines))
	best := ""
	bestCount := 0
	for _, l := range lines {
		if l == "" {
			continue
		}
		counts[l]++
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}

	if bestCount*2 > len(lines) {
		return best
	}
	return ""
}
