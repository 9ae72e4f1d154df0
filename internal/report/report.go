package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// sectionTitleRunes is how much of a chunk becomes its section_title.
// Truncation happens at a rune boundary with no word-boundary guarantee.
const sectionTitleRunes = 75

// Metadata describes one analysis run.
type Metadata struct {
	RunID               string   `json:"run_id"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
	InputDocuments      []string `json:"input_documents"`
}

// ExtractedSection is one top-ranked paragraph.
type ExtractedSection struct {
	Document       string  `json:"document"`
	SectionTitle   string  `json:"section_title"`
	ImportanceRank int     `json:"importance_rank"`
	Score          float64 `json:"score"`
	PageNumber     int     `json:"page_number"`
}

// SubsectionAnalysis is the micro-search result for one ranked section:
// the single sentence that best answers the query.
type SubsectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Report is the full JSON output of one run. Built once, never mutated.
type Report struct {
	Metadata           Metadata             `json:"metadata"`
	Documents          []string             `json:"documents"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// RankedSection carries everything the pipeline knows about one top-ranked
// chunk. The report builder turns these into the two output lists.
type RankedSection struct {
	Document    string
	Page        int
	Rank        int
	Score       float64
	Text        string
	RefinedText string
}

// Build assembles the report from typed records. sections must already be
// in rank order.
func Build(persona, job string, documents []string, sections []RankedSection) *Report {
	r := &Report{
		Metadata: Metadata{
			RunID:               uuid.NewString(),
			Persona:             persona,
			JobToBeDone:         job,
			ProcessingTimestamp: time.Now().Format(time.RFC3339),
			InputDocuments:      documents,
		},
		Documents:          documents,
		ExtractedSections:  make([]ExtractedSection, 0, len(sections)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, len(sections)),
	}

	for _, s := range sections {
		r.ExtractedSections = append(r.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			SectionTitle:   SectionTitle(s.Text),
			ImportanceRank: s.Rank,
			Score:          s.Score,
			PageNumber:     s.Page,
		})
		r.SubsectionAnalysis = append(r.SubsectionAnalysis, SubsectionAnalysis{
			Document:    s.Document,
			RefinedText: s.RefinedText,
			PageNumber:  s.Page,
		})
	}

	return r
}

// SectionTitle returns the first 75 runes of the chunk text.
func SectionTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= sectionTitleRunes {
		return text
	}
	return string(runes[:sectionTitleRunes])
}

// Write serializes the report as indented JSON to path, creating parent
// directories as needed.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
