package vectordb

// Document represents one chunk stored for ad-hoc semantic search.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds structured information about a stored chunk.
type DocumentMetadata struct {
	Document string // Source PDF filename.
	Page     int    // 1-based page number.
	Chunk    int    // Chunk index within the document.
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document   Document
	Similarity float32
}
