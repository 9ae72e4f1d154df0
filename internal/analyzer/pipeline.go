package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/docsift/docsift/internal/chunker"
	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embeddings"
	"github.com/docsift/docsift/internal/extract"
	"github.com/docsift/docsift/internal/query"
	"github.com/docsift/docsift/internal/rank"
	"github.com/docsift/docsift/internal/report"
	"github.com/docsift/docsift/internal/vectordb"
	"github.com/docsift/docsift/internal/walker"
)

// ProgressFunc is called after each document is handled.
type ProgressFunc func(processed, total int, document string)

// Pipeline orchestrates the full analysis workflow:
// extract -> chunk -> embed -> rank -> micro-search -> report.
// Documents are processed strictly sequentially.
type Pipeline struct {
	extractor  extract.Extractor
	embedder   embeddings.Embedder
	store      vectordb.Store // optional search index, may be nil
	cfg        *config.Config
	onProgress ProgressFunc
}

// NewPipeline creates a new Pipeline. store may be nil to disable the
// search index.
func NewPipeline(extractor extract.Extractor, embedder embeddings.Embedder, store vectordb.Store, cfg *config.Config) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		embedder:  embedder,
		store:     store,
		cfg:       cfg,
	}
}

// SetProgressFunc sets the progress callback.
func (p *Pipeline) SetProgressFunc(fn ProgressFunc) {
	p.onProgress = fn
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	Report             *report.Report
	DocumentsProcessed int
	DocumentsSkipped   int
	ChunksRanked       int
	Duration           time.Duration
	Errors             []error
}

// Run executes the full pipeline over the given documents. Extraction
// failures are isolated per document and collected in RunResult.Errors;
// configuration and embedding-model failures abort the run.
func (p *Pipeline) Run(ctx context.Context, files []walker.FileInfo) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{}

	queryText, err := query.Build(p.cfg.Persona, p.cfg.JobToBeDone)
	if err != nil {
		return nil, err
	}

	queryVecs, err := p.embedder.Embed(ctx, []string{queryText})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(queryVecs) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for the query")
	}
	queryVec := queryVecs[0]

	var documents []string
	var chunks []chunker.Chunk
	for i, f := range files {
		pages, err := p.extractor.Extract(f.Path)
		if err != nil {
			result.Errors = append(result.Errors, err)
			result.DocumentsSkipped++
			p.reportProgress(i+1, len(files), f.Name)
			continue
		}

		chunks = append(chunks, chunker.SplitParagraphs(f.Name, pages)...)
		documents = append(documents, f.Name)
		result.DocumentsProcessed++
		p.reportProgress(i+1, len(files), f.Name)
	}

	var vectors [][]float32
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}
		vectors, err = p.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunks: %w", err)
		}
		if len(vectors) != len(chunks) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
		}
	}

	ranked := rank.Rank(queryVec, chunks, vectors, p.cfg.TopK)
	result.ChunksRanked = len(chunks)

	sections := make([]report.RankedSection, 0, len(ranked))
	for _, s := range ranked {
		refined, err := p.refine(ctx, queryVec, s.Chunk.Text)
		if err != nil {
			return nil, err
		}
		sections = append(sections, report.RankedSection{
			Document:    s.Chunk.Document,
			Page:        s.Chunk.Page,
			Rank:        s.Rank,
			Score:       s.Score,
			Text:        s.Chunk.Text,
			RefinedText: refined,
		})
	}

	if p.store != nil {
		if err := p.index(ctx, chunks); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	result.Report = report.Build(p.cfg.Persona, p.cfg.JobToBeDone, documents, sections)
	result.Duration = time.Since(start)
	return result, nil
}

// refine performs the micro-search pass: the chunk is re-split into
// sentences, each sentence is embedded and ranked against the query, and
// the best one wins. A chunk with no sentence boundary stands in for
// itself.
func (p *Pipeline) refine(ctx context.Context, queryVec []float32, text string) (string, error) {
	sentences := chunker.Sentences(text)
	if len(sentences) == 0 {
		return text, nil
	}
	if len(sentences) == 1 {
		return sentences[0], nil
	}

	vectors, err := p.embedder.Embed(ctx, sentences)
	if err != nil {
		return "", fmt.Errorf("embedding sentences: %w", err)
	}
	best := rank.Best(queryVec, vectors)
	if best < 0 {
		return text, nil
	}
	return sentences[best], nil
}

// index persists every chunk into the search index for `docsift search`.
func (p *Pipeline) index(ctx context.Context, chunks []chunker.Chunk) error {
	docs := make([]vectordb.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = vectordb.Document{
			ID:      fmt.Sprintf("%s:%d", c.Document, c.Index),
			Content: c.Text,
			Metadata: vectordb.DocumentMetadata{
				Document: c.Document,
				Page:     c.Page,
				Chunk:    c.Index,
			},
		}
	}
	if err := p.store.AddDocuments(ctx, docs); err != nil {
		return fmt.Errorf("indexing chunks: %w", err)
	}
	if err := p.store.Persist(ctx, p.cfg.IndexDir); err != nil {
		return fmt.Errorf("persisting search index: %w", err)
	}
	return nil
}

func (p *Pipeline) reportProgress(processed, total int, document string) {
	if p.onProgress != nil {
		p.onProgress(processed, total, document)
	}
}
