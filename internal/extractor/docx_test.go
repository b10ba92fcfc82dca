package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("failed to write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>5 years experience</w:t></w:r></w:p>
    <w:p><w:r><w:t>   </w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Python</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>SQL</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func TestExtractDOCX(t *testing.T) {
	data := buildDocx(t, sampleDocumentXML)
	e := NewDocumentExtractor(Options{}, nil)

	got, err := e.Extract(context.Background(), data, "resume.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Jane Doe\n5 years experience\nPython\tSQL"
	if got != expected {
		t.Errorf("Extract = %q, want %q", got, expected)
	}
}

func TestExtractDOCXSplitRuns(t *testing.T) {
	const xml = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Soft</w:t></w:r><w:r><w:t>ware Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`

	data := buildDocx(t, xml)
	e := NewDocumentExtractor(Options{}, nil)

	got, err := e.Extract(context.Background(), data, "resume.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Software Engineer" {
		t.Errorf("Extract = %q, want %q", got, "Software Engineer")
	}
}

func TestExtractDOCXCorruptBytes(t *testing.T) {
	e := NewDocumentExtractor(Options{}, nil)

	_, err := e.Extract(context.Background(), []byte("not a zip archive"), "resume.docx")
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Errorf("expected ErrUnreadableDocument, got %v", err)
	}
}

func TestExtractDOCXMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	_, _ = w.Write([]byte("<styles/>"))
	_ = zw.Close()

	e := NewDocumentExtractor(Options{}, nil)
	_, err := e.Extract(context.Background(), buf.Bytes(), "resume.docx")
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Errorf("expected ErrUnreadableDocument, got %v", err)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := NewDocumentExtractor(Options{}, nil)

	_, err := e.Extract(context.Background(), []byte("data"), "resume.xlsx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
