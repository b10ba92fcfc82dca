package extractor

import (
	"bytes"
	"fmt"
	"log"
	"sort"
	"strings"

	"context"

	"github.com/ledongthuc/pdf"
)

// extractPDF runs the per-page pipeline: layout-aware text extraction,
// low-confidence classification, OCR fallback for flagged pages, repeated
// header/footer stripping, then joining and normalization.
func (e *documentExtractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	totalPages := reader.NumPage()
	pages := make([]string, totalPages)
	for i := 1; i <= totalPages; i++ {
		pages[i-1] = pageText(reader.Page(i))
	}

	return e.refinePages(ctx, data, pages), nil
}

// refinePages applies the post-extraction stages to per-page text:
// low-confidence flagging, OCR re-derivation of flagged pages only,
// header/footer stripping, per-page normalization, then joining non-empty
// pages with blank lines.
func (e *documentExtractor) refinePages(ctx context.Context, data []byte, pages []string) string {
	var flagged []int
	for i, p := range pages {
		if IsLowConfidence(p, e.opts.LowCharThreshold) {
			flagged = append(flagged, i)
		}
	}

	// Rasterizing is the expensive step; skip it entirely unless at least
	// one page needs re-derivation.
	if e.opts.OCREnabled && e.ocr != nil && len(flagged) > 0 {
		e.ocrFallback(ctx, data, pages, flagged)
	}

	pages = StripRepeatedLines(pages)

	var parts []string
	for _, p := range pages {
		// Hyphenation repair must see the page's line breaks, so it runs
		// before whitespace collapsing.
		p = CleanWhitespace(RepairHyphenation(p))
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

// pageText prefers row-based extraction, with rows ordered top-to-bottom and
// text fragments left-to-right, approximating natural reading order over the
// PDF's internal ordering. It falls back to plain linear extraction, and a
// page that fails entirely yields empty text rather than aborting the
// document.
func pageText(page pdf.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	if page.V.IsNull() {
		return ""
	}

	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		sort.Slice(rows, func(i, j int) bool {
			// PDF coordinates grow upward.
			return rows[i].Position > rows[j].Position
		})

		var b strings.Builder
		for _, row := range rows {
			texts := row.Content
			sort.Slice(texts, func(i, j int) bool { return texts[i].X < texts[j].X })
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			for _, t := range texts {
				b.WriteString(t.S)
			}
		}
		return b.String()
	}

	plain, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return plain
}

// ocrFallback rasterizes the whole byte stream once and replaces each
// flagged page's text in place. OCR failures leave the original text; a
// blank scanned page simply stays empty.
func (e *documentExtractor) ocrFallback(ctx context.Context, data []byte, pages []string, flagged []int) {
	images, cleanup, err := e.ocr.RasterizePDF(ctx, data)
	if err != nil {
		log.Printf("⚠️  OCR rasterization failed, keeping extracted text: %v", err)
		return
	}
	defer cleanup()

	for _, idx := range flagged {
		if idx >= len(images) {
			continue
		}
		text, err := e.ocr.RecognizePage(ctx, images[idx], e.opts.OCRLanguage)
		if err != nil {
			log.Printf("⚠️  OCR failed for page %d: %v", idx+1, err)
			continue
		}
		pages[idx] = text
	}
}
