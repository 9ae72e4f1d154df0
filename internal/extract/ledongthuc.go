package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LedongthucExtractor extracts text with github.com/ledongthuc/pdf.
// Pure Go, no native dependencies; the default backend.
type LedongthucExtractor struct{}

func (e *LedongthucExtractor) Name() string { return "ledongthuc" }

func (e *LedongthucExtractor) Extract(path string) (pages []Page, err error) {
	// The library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %s: %v", ErrExtraction, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrExtraction, path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages = make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, Page{Number: i, Text: text})
	}
	return pages, nil
}
