package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docsift/docsift/internal/config"
)

func TestNewKnownBackends(t *testing.T) {
	tests := []struct {
		backend config.ExtractorType
		name    string
	}{
		{config.ExtractorLedongthuc, "ledongthuc"},
		{config.ExtractorMuPDF, "mupdf"},
	}
	for _, tt := range tests {
		ex, err := New(tt.backend)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tt.backend, err)
		}
		if ex.Name() != tt.name {
			t.Errorf("New(%q).Name() = %q, want %q", tt.backend, ex.Name(), tt.name)
		}
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("ghostscript")
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLedongthucMissingFile(t *testing.T) {
	ex, err := New(config.ExtractorLedongthuc)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = ex.Extract("/nonexistent/file.pdf")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}

func TestLedongthucCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\nthis is not a real pdf body"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ex, err := New(config.ExtractorLedongthuc)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = ex.Extract(path)
	if err == nil {
		t.Fatal("expected error for corrupt file")
	}
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}

func TestLedongthucEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ex, err := New(config.ExtractorLedongthuc)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = ex.Extract(path)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("expected ErrExtraction for empty file, got %v", err)
	}
}
