package extractor

import "testing"

func TestCleanWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "null bytes become spaces",
			input:    "foo\x00bar",
			expected: "foo bar",
		},
		{
			name:     "carriage returns and tabs collapse",
			input:    "a\r\r\t\tb",
			expected: "a b",
		},
		{
			name:     "whitespace runs collapse",
			input:    "  a   b \n\n c  ",
			expected: "a b c",
		},
		{
			name:     "only whitespace",
			input:    " \t\r\n ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanWhitespace(tt.input); got != tt.expected {
				t.Errorf("CleanWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanWhitespaceIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a\x00b\r\tc   d\n\ne",
		" leading and trailing ",
	}

	for _, in := range inputs {
		once := CleanWhitespace(in)
		twice := CleanWhitespace(once)
		if once != twice {
			t.Errorf("CleanWhitespace not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestRepairHyphenation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "line-wrap hyphen joins",
			input:    "devel-\nopment",
			expected: "development",
		},
		{
			name:     "digit boundary untouched",
			input:    "2023-\n2024",
			expected: "2023-\n2024",
		},
		{
			name:     "hyphen without break untouched",
			input:    "well-known",
			expected: "well-known",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairHyphenation(tt.input); got != tt.expected {
				t.Errorf("RepairHyphenation(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
