package extractor

import (
	"context"
	"strings"
	"testing"
)

func confidentPage(marker string) string {
	return marker + " " + strings.Repeat("relevant resume content ", 12)
}

func newPipelineExtractor(stub *stubRunner, ocrEnabled bool) *documentExtractor {
	var client *OCRClient
	if stub != nil {
		client = newStubOCRClient(stub)
	}
	e := NewDocumentExtractor(Options{OCREnabled: ocrEnabled}, client)
	return e.(*documentExtractor)
}

func countCalls(stub *stubRunner, binary string) int {
	n := 0
	for _, call := range stub.calls {
		if call[0] == binary {
			n++
		}
	}
	return n
}

func TestRefinePagesSkipsRasterizationWhenAllPagesConfident(t *testing.T) {
	stub := &stubRunner{pageCount: 2, ocrText: "should never appear"}
	e := newPipelineExtractor(stub, true)

	pages := []string{confidentPage("first"), confidentPage("second")}
	got := e.refinePages(context.Background(), []byte("%PDF-1.4"), pages)

	if len(stub.calls) != 0 {
		t.Fatalf("expected no external invocations, got %v", stub.calls)
	}
	if strings.Contains(got, "should never appear") {
		t.Error("OCR text leaked into output without any flagged page")
	}
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("extracted text lost page content: %q", got)
	}
}

func TestRefinePagesReplacesOnlyFlaggedPages(t *testing.T) {
	stub := &stubRunner{pageCount: 3, ocrText: "Recovered scanned resume text"}
	e := newPipelineExtractor(stub, true)

	pages := []string{confidentPage("alpha"), "·", confidentPage("omega")}
	got := e.refinePages(context.Background(), []byte("%PDF-1.4"), pages)

	if n := countCalls(stub, "pdftoppm"); n != 1 {
		t.Errorf("pdftoppm invoked %d times, want 1", n)
	}
	if n := countCalls(stub, "tesseract"); n != 1 {
		t.Errorf("tesseract invoked %d times, want 1 (one flagged page)", n)
	}

	parts := strings.Split(got, "\n\n")
	if len(parts) != 3 {
		t.Fatalf("got %d pages, want 3: %q", len(parts), got)
	}
	if !strings.Contains(parts[0], "alpha") {
		t.Errorf("confident page 1 was altered: %q", parts[0])
	}
	if parts[1] != "Recovered scanned resume text" {
		t.Errorf("flagged page not replaced by OCR text: %q", parts[1])
	}
	if !strings.Contains(parts[2], "omega") {
		t.Errorf("confident page 3 was altered: %q", parts[2])
	}
}

func TestRefinePagesOCRDisabled(t *testing.T) {
	stub := &stubRunner{pageCount: 1, ocrText: "should never appear"}
	e := newPipelineExtractor(stub, false)

	got := e.refinePages(context.Background(), []byte("%PDF-1.4"), []string{"·"})

	if len(stub.calls) != 0 {
		t.Fatalf("expected no external invocations with OCR disabled, got %v", stub.calls)
	}
	if strings.Contains(got, "should never appear") {
		t.Error("OCR text leaked into output with OCR disabled")
	}
}

func TestRefinePagesNoOCRClient(t *testing.T) {
	e := newPipelineExtractor(nil, true)

	got := e.refinePages(context.Background(), []byte("%PDF-1.4"), []string{"·", confidentPage("kept")})
	if !strings.Contains(got, "kept") {
		t.Errorf("confident page lost without an OCR client: %q", got)
	}
}

func TestRefinePagesOCRFailureKeepsExtractedText(t *testing.T) {
	stub := &stubRunner{failRaster: true}
	e := newPipelineExtractor(stub, true)

	pages := []string{"thin page text", confidentPage("solid")}
	got := e.refinePages(context.Background(), []byte("%PDF-1.4"), pages)

	if !strings.Contains(got, "thin page text") {
		t.Errorf("flagged page text dropped after rasterization failure: %q", got)
	}
	if !strings.Contains(got, "solid") {
		t.Errorf("confident page lost: %q", got)
	}
}
