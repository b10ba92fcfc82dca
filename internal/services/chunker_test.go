package services

import (
	"strings"
	"testing"
)

func TestChunkTextEmpty(t *testing.T) {
	chunker := NewTextChunker()
	if got := chunker.ChunkText("", 100, 10); len(got) != 0 {
		t.Errorf("chunks = %v, want none", got)
	}
	if got := chunker.ChunkText("  \n\n  ", 100, 10); len(got) != 0 {
		t.Errorf("blank input chunks = %v, want none", got)
	}
}

func TestChunkTextShortInputSingleChunk(t *testing.T) {
	chunker := NewTextChunker()
	got := chunker.ChunkText("Senior Go developer.\n\nSeven years of backend work.", 200, 20)

	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1: %v", len(got), got)
	}
	if got[0] != "Senior Go developer. Seven years of backend work." {
		t.Errorf("chunk = %q", got[0])
	}
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	paras := []string{
		"Led the payments platform team for three years",
		"Migrated the billing pipeline to Go",
		"Mentored four junior engineers",
	}
	chunker := NewTextChunker()
	got := chunker.ChunkText(strings.Join(paras, "\n\n"), 50, 0)

	if len(got) != 3 {
		t.Fatalf("got %d chunks, want 3: %v", len(got), got)
	}
	for i, chunk := range got {
		if chunk != paras[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunk, paras[i])
		}
		if len(chunk) > 50 {
			t.Errorf("chunk %d length %d exceeds cap", i, len(chunk))
		}
	}
}

func TestChunkTextBreaksOversizedParagraphBySentence(t *testing.T) {
	para := "Built ingestion services. Ran the on-call rotation. Wrote the deploy tooling. Owned the metrics stack."
	chunker := NewTextChunker()
	got := chunker.ChunkText(para, 60, 0)

	if len(got) < 2 {
		t.Fatalf("oversized paragraph not split: %v", got)
	}
	for i, chunk := range got {
		if len(chunk) > 60 {
			t.Errorf("chunk %d length %d exceeds cap: %q", i, len(chunk), chunk)
		}
	}
}

func TestChunkTextOverlapCarriesTail(t *testing.T) {
	paras := []string{
		"First block of experience details for the resume",
		"Second block of experience details for the resume",
	}
	chunker := NewTextChunker()
	got := chunker.ChunkText(strings.Join(paras, "\n\n"), 60, 15)

	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(got), got)
	}
	tail := got[0][len(got[0])-15:]
	if !strings.HasPrefix(got[1], tail) {
		t.Errorf("chunk 2 %q does not start with tail %q of chunk 1", got[1], tail)
	}
}

func TestChunkTextFirstChunkFeedsEmbedding(t *testing.T) {
	// The similarity service embeds only the leading chunk; it must carry
	// the top of the resume where the identifying content lives.
	text := "Jane Doe\nStaff Engineer\n\n" + strings.Repeat("Later detail. ", 300)
	chunker := NewTextChunker()
	got := chunker.ChunkText(text, similarityChunkSize, 0)

	if len(got) == 0 {
		t.Fatal("no chunks produced")
	}
	if !strings.HasPrefix(got[0], "Jane Doe") {
		t.Errorf("leading chunk lost the resume head: %q", got[0][:40])
	}
}
