package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// word/document.xml structure, local names only. Top-level body paragraphs
// and tables are matched as direct children, so table cell paragraphs are
// not double-counted.
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
	Tables     []docxTable     `xml:"tbl"`
}

type docxParagraph struct {
	Texts []docxText `xml:"r>t"`
}

type docxText struct {
	Value string `xml:",chardata"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

// extractDOCX concatenates every non-empty paragraph (one per line), then
// every table's rows as tab-joined cell text (one row per line), in document
// order. No OCR path: the format has no scanned-page concept.
func (e *documentExtractor) extractDOCX(data []byte) (string, error) {
	doc, err := parseDocx(data)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, p := range doc.Body.Paragraphs {
		text := CleanWhitespace(p.text())
		if text != "" {
			parts = append(parts, text)
		}
	}
	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			cells := make([]string, len(row.Cells))
			for i, cell := range row.Cells {
				cells[i] = CleanWhitespace(cell.text())
			}
			parts = append(parts, strings.Join(cells, "\t"))
		}
	}

	return strings.Join(parts, "\n"), nil
}

func parseDocx(data []byte) (*docxDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	var payload []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
		}
		payload, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
		}
		break
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: missing word/document.xml", ErrUnreadableDocument)
	}

	var doc docxDocument
	if err := xml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	return &doc, nil
}

func (p docxParagraph) text() string {
	var b strings.Builder
	for _, t := range p.Texts {
		b.WriteString(t.Value)
	}
	return b.String()
}

func (c docxCell) text() string {
	var parts []string
	for _, p := range c.Paragraphs {
		parts = append(parts, p.text())
	}
	return strings.Join(parts, " ")
}
