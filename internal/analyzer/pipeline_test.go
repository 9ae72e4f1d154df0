package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/extract"
	"github.com/docsift/docsift/internal/walker"
)

// stubExtractor serves canned pages keyed by file path and fails for paths
// listed in broken.
type stubExtractor struct {
	pages  map[string][]extract.Page
	broken map[string]bool
}

func (s *stubExtractor) Name() string { return "stub" }

func (s *stubExtractor) Extract(path string) ([]extract.Page, error) {
	if s.broken[path] {
		return nil, extract.ErrExtraction
	}
	pages, ok := s.pages[path]
	if !ok {
		return nil, extract.ErrExtraction
	}
	return pages, nil
}

// keywordEmbedder is a deterministic embedder: one dimension per keyword,
// counting occurrences, with a constant tail dimension so no vector has
// zero norm.
type keywordEmbedder struct {
	keywords []string
	calls    int
}

func (m *keywordEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(m.keywords)+1)
		lower := strings.ToLower(text)
		for k, kw := range m.keywords {
			vec[k] = float32(strings.Count(lower, kw))
		}
		vec[len(m.keywords)] = 0.1
		vectors[i] = vec
	}
	return vectors, nil
}

func (m *keywordEmbedder) Dimensions() int { return len(m.keywords) + 1 }
func (m *keywordEmbedder) Name() string    { return "keyword-mock" }

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Persona = "Travel Planner"
	cfg.JobToBeDone = "find the best beach for a group trip"
	cfg.TopK = 10
	return cfg
}

func newTestPipeline(ex extract.Extractor, cfg *config.Config) *Pipeline {
	embedder := &keywordEmbedder{keywords: []string{"travel", "planner", "beach", "trip", "museum", "budget"}}
	return NewPipeline(ex, embedder, nil, cfg)
}

func TestRunRanksMatchingParagraphFirst(t *testing.T) {
	ex := &stubExtractor{pages: map[string][]extract.Page{
		"/in/guide.pdf": {
			{Number: 1, Text: "The museum district has twelve galleries.\n\nThe beach is perfect for a group trip. Surf lessons are available."},
			{Number: 2, Text: "Average rainfall statistics by month."},
		},
	}}
	p := newTestPipeline(ex, testConfig())

	result, err := p.Run(context.Background(), []walker.FileInfo{
		{Path: "/in/guide.pdf", Name: "guide.pdf"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	r := result.Report
	if len(r.ExtractedSections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(r.ExtractedSections))
	}

	top := r.ExtractedSections[0]
	if top.ImportanceRank != 1 {
		t.Errorf("top section rank = %d, want 1", top.ImportanceRank)
	}
	if !strings.Contains(top.SectionTitle, "beach") {
		t.Errorf("top section should be the beach paragraph, got %q", top.SectionTitle)
	}
	if top.Score <= r.ExtractedSections[1].Score {
		t.Errorf("top score %v should be strictly higher than second %v", top.Score, r.ExtractedSections[1].Score)
	}
	for i := 1; i < len(r.ExtractedSections); i++ {
		if r.ExtractedSections[i].Score > r.ExtractedSections[i-1].Score {
			t.Errorf("scores not non-increasing at %d", i)
		}
	}
}

func TestRunMicroSearchPicksBestSentence(t *testing.T) {
	ex := &stubExtractor{pages: map[string][]extract.Page{
		"/in/guide.pdf": {
			{Number: 1, Text: "The parking lot is paved. The beach trip is ideal for groups. Tickets cost nine euros."},
		},
	}}
	p := newTestPipeline(ex, testConfig())

	result, err := p.Run(context.Background(), []walker.FileInfo{
		{Path: "/in/guide.pdf", Name: "guide.pdf"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	r := result.Report
	if len(r.SubsectionAnalysis) != 1 {
		t.Fatalf("expected 1 subsection, got %d", len(r.SubsectionAnalysis))
	}
	want := "The beach trip is ideal for groups."
	if r.SubsectionAnalysis[0].RefinedText != want {
		t.Errorf("refined_text = %q, want %q", r.SubsectionAnalysis[0].RefinedText, want)
	}
}

func TestRunRefinedTextFallsBackToChunk(t *testing.T) {
	ex := &stubExtractor{pages: map[string][]extract.Page{
		"/in/notes.pdf": {
			{Number: 1, Text: "a fragment with no terminator"},
		},
	}}
	p := newTestPipeline(ex, testConfig())

	result, err := p.Run(context.Background(), []walker.FileInfo{
		{Path: "/in/notes.pdf", Name: "notes.pdf"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := result.Report.SubsectionAnalysis[0].RefinedText; got != "a fragment with no terminator" {
		t.Errorf("expected whole-chunk fallback, got %q", got)
	}
}

func TestRunSkipsBrokenDocuments(t *testing.T) {
	ex := &stubExtractor{
		pages: map[string][]extract.Page{
			"/in/good.pdf": {{Number: 1, Text: "A beach trip paragraph."}},
		},
		broken: map[string]bool{"/in/bad.pdf": true},
	}
	p := newTestPipeline(ex, testConfig())

	result, err := p.Run(context.Background(), []walker.FileInfo{
		{Path: "/in/bad.pdf", Name: "bad.pdf"},
		{Path: "/in/good.pdf", Name: "good.pdf"},
	})
	if err != nil {
		t.Fatalf("Run should not fail when one document is broken: %v", err)
	}

	if result.DocumentsProcessed != 1 {
		t.Errorf("DocumentsProcessed = %d, want 1", result.DocumentsProcessed)
	}
	if result.DocumentsSkipped != 1 {
		t.Errorf("DocumentsSkipped = %d, want 1", result.DocumentsSkipped)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 collected error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], extract.ErrExtraction) {
		t.Errorf("collected error should wrap ErrExtraction, got %v", result.Errors[0])
	}

	docs := result.Report.Documents
	if len(docs) != 1 || docs[0] != "good.pdf" {
		t.Errorf("report documents = %v, want [good.pdf]", docs)
	}
}

func TestRunTopKLimitsSections(t *testing.T) {
	ex := &stubExtractor{pages: map[string][]extract.Page{
		"/in/long.pdf": {
			{Number: 1, Text: "One.\n\nTwo.\n\nThree.\n\nFour.\n\nFive."},
		},
	}}
	cfg := testConfig()
	cfg.TopK = 2
	p := newTestPipeline(ex, cfg)

	result, err := p.Run(context.Background(), []walker.FileInfo{
		{Path: "/in/long.pdf", Name: "long.pdf"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := len(result.Report.ExtractedSections); got != 2 {
		t.Errorf("expected top_k=2 sections, got %d", got)
	}
	if result.ChunksRanked != 5 {
		t.Errorf("ChunksRanked = %d, want 5", result.ChunksRanked)
	}
}

func TestRunEmptyPersonaFails(t *testing.T) {
	cfg := testConfig()
	cfg.Persona = ""
	p := newTestPipeline(&stubExtractor{}, cfg)

	_, err := p.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for empty persona")
	}
	if !errors.Is(err, config.ErrConfig) {
		t.Errorf("expected config.ErrConfig, got %v", err)
	}
}

func TestRunNoFiles(t *testing.T) {
	p := newTestPipeline(&stubExtractor{}, testConfig())

	result, err := p.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.DocumentsProcessed != 0 {
		t.Errorf("DocumentsProcessed = %d", result.DocumentsProcessed)
	}
	if len(result.Report.ExtractedSections) != 0 {
		t.Errorf("expected no sections, got %d", len(result.Report.ExtractedSections))
	}
}

func TestRunProgressCallback(t *testing.T) {
	ex := &stubExtractor{pages: map[string][]extract.Page{
		"/in/a.pdf": {{Number: 1, Text: "A paragraph."}},
		"/in/b.pdf": {{Number: 1, Text: "Another paragraph."}},
	}}
	p := newTestPipeline(ex, testConfig())

	var seen []string
	p.SetProgressFunc(func(processed, total int, document string) {
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
		seen = append(seen, document)
	})

	_, err := p.Run(context.Background(), []walker.FileInfo{
		{Path: "/in/a.pdf", Name: "a.pdf"},
		{Path: "/in/b.pdf", Name: "b.pdf"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(seen) != 2 || seen[0] != "a.pdf" || seen[1] != "b.pdf" {
		t.Errorf("progress callbacks: %v", seen)
	}
}

func TestRunDeterministic(t *testing.T) {
	files := []walker.FileInfo{{Path: "/in/guide.pdf", Name: "guide.pdf"}}
	pages := map[string][]extract.Page{
		"/in/guide.pdf": {
			{Number: 1, Text: "The beach trip suits groups.\n\nMuseum hours vary by season."},
		},
	}

	run := func() []string {
		p := newTestPipeline(&stubExtractor{pages: pages}, testConfig())
		result, err := p.Run(context.Background(), files)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		titles := make([]string, len(result.Report.ExtractedSections))
		for i, s := range result.Report.ExtractedSections {
			titles[i] = s.SectionTitle
		}
		return titles
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("runs differ at %d: %q vs %q", i, a[i], b[i])
		}
	}
}
