package extractor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnreadableDocument marks a document whose container cannot be
	// opened at all (corrupt bytes, wrong format signature). Fatal for that
	// resume only; callers exclude it from the batch instead of retrying.
	ErrUnreadableDocument = errors.New("document cannot be opened")

	// ErrUnsupportedFormat marks a file extension no pipeline handles.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

const (
	// DefaultLowCharThreshold is the non-whitespace character floor below
	// which a PDF page gets re-derived via OCR.
	DefaultLowCharThreshold = 200

	// DefaultOCRLanguage is the ISO 639 three-letter OCR language code.
	DefaultOCRLanguage = "eng"
)

// Options holds the tunable extraction policy. Thresholds are configuration,
// not literals, so deployments can adjust them without touching pipeline
// logic.
type Options struct {
	OCREnabled       bool
	OCRLanguage      string
	LowCharThreshold int
}

type DocumentExtractor interface {
	// Extract converts raw document bytes into normalized plain text. The
	// pipeline is chosen by the filename's extension.
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

type documentExtractor struct {
	opts Options
	ocr  *OCRClient
}

func NewDocumentExtractor(opts Options, ocr *OCRClient) DocumentExtractor {
	if opts.LowCharThreshold <= 0 {
		opts.LowCharThreshold = DefaultLowCharThreshold
	}
	if opts.OCRLanguage == "" {
		opts.OCRLanguage = DefaultOCRLanguage
	}
	return &documentExtractor{opts: opts, ocr: ocr}
}

// Extract implements DocumentExtractor.
func (e *documentExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return e.extractPDF(ctx, data)
	case ".docx":
		return e.extractDOCX(data)
	case ".txt", ".rtf", ".odt":
		return e.extractPlainDoc(data, ext)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// SupportedFile reports whether a filename maps to an extraction pipeline.
func SupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt", ".rtf", ".odt":
		return true
	}
	return false
}
