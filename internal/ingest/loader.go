// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads administrative documents, splits them into
// overlapping chunks with inferred metadata, embeds them, and writes
// them to the vector index.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	pdflib "github.com/ledongthuc/pdf"
)

// docPage is a unit of loaded text. PDF files produce one per page;
// other formats produce a single page numbered 0.
type docPage struct {
	text string
	page int
}

// supportedExts lists the file extensions the loader accepts.
var supportedExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".md":   true,
	".txt":  true,
}

// loadDocument reads one file into pages of plain text.
func loadDocument(path string) ([]docPage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return loadPDF(path)
	case ".docx":
		return loadDOCX(path)
	case ".md", ".txt":
		return loadPlain(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func loadPDF(path string) ([]docPage, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	var pages []docPage
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, docPage{text: text, page: i})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf %s: no extractable text", path)
	}
	return pages, nil
}

func loadDOCX(path string) ([]docPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat docx %s: %w", path, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing docx %s: %w", path, err)
	}

	var buf strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("docx %s: no extractable text", path)
	}
	return []docPage{{text: text}}, nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func loadPlain(path string) ([]docPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	return []docPage{{text: string(data)}}, nil
}
