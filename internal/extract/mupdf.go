package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// MuPDFExtractor extracts text with go-fitz (MuPDF bindings). Handles some
// documents the pure Go backend cannot, at the cost of a native dependency.
type MuPDFExtractor struct{}

func (e *MuPDFExtractor) Name() string { return "mupdf" }

func (e *MuPDFExtractor) Extract(path string) ([]Page, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrExtraction, path, err)
	}
	defer doc.Close()

	total := doc.NumPage()
	pages := make([]Page, 0, total)
	for i := 0; i < total; i++ {
		text, err := doc.Text(i)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}
	return pages, nil
}
