package extract

import (
	"errors"
	"fmt"

	"github.com/docsift/docsift/internal/config"
)

// ErrExtraction marks an unreadable or corrupt PDF. The pipeline skips the
// document and continues the batch when it sees this error.
var ErrExtraction = errors.New("pdf extraction failed")

// Page is one page of extracted plain text. Numbering is 1-based.
type Page struct {
	Number int
	Text   string
}

// Extractor reads a PDF file and yields its text page by page.
type Extractor interface {
	// Extract returns the ordered pages of the document at path.
	// Failures for the whole document wrap ErrExtraction.
	Extract(path string) ([]Page, error)

	// Name returns the backend identifier.
	Name() string
}

// New returns the extraction backend for the given type.
func New(backend config.ExtractorType) (Extractor, error) {
	switch backend {
	case config.ExtractorLedongthuc:
		return &LedongthucExtractor{}, nil
	case config.ExtractorMuPDF:
		return &MuPDFExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor backend %q", backend)
	}
}
