package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits resume text into pieces sized for the embedding
// model. Splits respect paragraph boundaries first and fall back to
// sentence boundaries for oversized paragraphs, so a chunk never starts
// mid-thought.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Overlap carries the tail of each chunk
// into the next so section headers keep their context; a single sentence
// longer than maxChunkSize stays whole rather than being cut mid-word.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 || overlap >= maxChunkSize {
		overlap = 0
	}

	segments := segmentText(text, maxChunkSize)

	var chunks []string
	var current strings.Builder
	for _, seg := range segments {
		if current.Len() > 0 && current.Len()+len(seg)+1 > maxChunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
			if overlap > 0 {
				current.WriteString(tailRunes(chunks[len(chunks)-1], overlap))
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(seg)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// segmentText yields paragraphs, breaking any paragraph over the size cap
// into sentences.
func segmentText(text string, maxSize int) []string {
	var segments []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxSize {
			segments = append(segments, para)
			continue
		}
		for _, sentence := range strings.FieldsFunc(para, isSentenceEnd) {
			sentence = strings.TrimSpace(sentence)
			if sentence != "" {
				segments = append(segments, sentence)
			}
		}
	}
	return segments
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func tailRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
