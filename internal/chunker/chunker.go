package chunker

import (
	"regexp"
	"strings"

	"github.com/docsift/docsift/internal/extract"
)

// Chunk is a paragraph-level unit of extracted document text. Chunks are
// created once during chunking and never mutated afterwards.
type Chunk struct {
	Document string // Source document filename.
	Page     int    // 1-based page the paragraph was extracted from.
	Index    int    // Position across the whole document, 0-based.
	Text     string
}

// paragraphSplitter matches runs of two or more newlines (allowing blank
// lines that contain only spaces or tabs). That is the paragraph boundary.
var paragraphSplitter = regexp.MustCompile(`\n[ \t\r]*\n[\s]*`)

// SplitParagraphs splits the extracted pages of one document into paragraph
// chunks. Whitespace-only paragraphs are discarded; surviving chunks are
// numbered sequentially across the document.
func SplitParagraphs(document string, pages []extract.Page) []Chunk {
	var chunks []Chunk
	index := 0
	for _, page := range pages {
		for _, para := range paragraphSplitter.Split(page.Text, -1) {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			chunks = append(chunks, Chunk{
				Document: document,
				Page:     page.Number,
				Index:    index,
				Text:     para,
			})
			index++
		}
	}
	return chunks
}
