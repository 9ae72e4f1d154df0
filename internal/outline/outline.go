package outline

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/docsift/docsift/internal/extract"
)

// Heading is one detected document heading.
type Heading struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the per-document heading structure.
type Outline struct {
	Title    string    `json:"title"`
	Headings []Heading `json:"outline"`
}

// span is a run of text sharing one line and font size.
type span struct {
	text     string
	fontSize float64
	font     string
	y        float64
	minX     float64
	maxX     float64
}

const defaultPageWidth = 612 // US Letter, when no MediaBox is found.

// Extract builds a heading outline for the PDF at path. Headings are
// scored by font size relative to the largest span on the first page,
// emphasis, casing, and horizontal centering; the document title is the
// largest first-page span.
func Extract(path string) (o *Outline, err error) {
	// The library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			o = nil
			err = fmt.Errorf("%w: %s: %v", extract.ErrExtraction, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", extract.ErrExtraction, path, err)
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return &Outline{}, nil
	}

	// Document max font size and title come from the first page.
	first := collectSpans(r.Page(1))
	var maxFont float64
	var title string
	for _, s := range first {
		if s.fontSize > maxFont && len([]rune(strings.TrimSpace(s.text))) > 1 {
			maxFont = s.fontSize
			title = strings.TrimSpace(s.text)
		}
	}

	o = &Outline{Title: title}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		width := pageWidth(page)
		for _, s := range collectSpans(page) {
			level := classifyLevel(spanScore(s, maxFont, width))
			if level == "" {
				continue
			}
			o.Headings = append(o.Headings, Heading{
				Level: level,
				Text:  strings.TrimSpace(s.text),
				Page:  i,
			})
		}
	}
	return o, nil
}

// collectSpans groups a page's text runs into line-level spans: consecutive
// runs on the same baseline with the same font size merge into one span.
func collectSpans(page pdf.Page) []span {
	if page.V.IsNull() {
		return nil
	}
	content := page.Content()

	var spans []span
	var cur *span
	for _, t := range content.Text {
		if cur != nil && sameBaseline(cur, t) {
			cur.text += t.S
			if end := t.X + t.W; end > cur.maxX {
				cur.maxX = end
			}
			continue
		}
		spans = append(spans, span{
			text:     t.S,
			fontSize: t.FontSize,
			font:     t.Font,
			y:        t.Y,
			minX:     t.X,
			maxX:     t.X + t.W,
		})
		cur = &spans[len(spans)-1]
	}
	return spans
}

func sameBaseline(s *span, t pdf.Text) bool {
	return math.Abs(s.y-t.Y) < 0.5 && math.Abs(s.fontSize-t.FontSize) < 0.1
}

// spanScore rates how heading-like a span is. Zero means body text.
func spanScore(s span, maxFont, pageWidth float64) int {
	text := strings.TrimSpace(s.text)
	if text == "" || len(strings.Fields(text)) > 15 || !isPrintable(text) {
		return 0
	}
	if maxFont <= 0 {
		return 0
	}

	score := 0
	switch {
	case s.fontSize >= maxFont*0.95:
		score += 3
	case s.fontSize >= maxFont*0.75:
		score += 2
	case s.fontSize >= maxFont*0.60:
		score += 1
	}

	if isEmphasized(s.font) {
		score++
	}
	if isTitleCase(text) || isAllUpper(text) {
		score++
	}
	if pageWidth > 0 && s.minX > pageWidth*0.25 && s.maxX < pageWidth*0.75 {
		score++
	}
	return score
}

// classifyLevel maps a span score to a heading level, or "" for none.
func classifyLevel(score int) string {
	switch {
	case score >= 5:
		return "H1"
	case score >= 3:
		return "H2"
	case score >= 2:
		return "H3"
	}
	return ""
}

// isEmphasized checks the font name for bold/heavy variants, the closest
// equivalent of the emphasis flags PDF renderers expose.
func isEmphasized(font string) bool {
	lower := strings.ToLower(font)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") || strings.Contains(lower, "italic")
}

func isPrintable(text string) bool {
	for _, r := range text {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// isTitleCase reports whether every word starts with an uppercase letter
// followed by non-uppercase letters.
func isTitleCase(text string) bool {
	words := strings.Fields(text)
	sawLetter := false
	for _, w := range words {
		runes := []rune(w)
		first := true
		for _, r := range runes {
			if !unicode.IsLetter(r) {
				continue
			}
			sawLetter = true
			if first {
				if !unicode.IsUpper(r) {
					return false
				}
				first = false
			} else if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return sawLetter
}

func isAllUpper(text string) bool {
	sawLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			sawLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return sawLetter
}

// pageWidth resolves the page MediaBox width, walking up the page tree for
// inherited values.
func pageWidth(page pdf.Page) float64 {
	v := page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			if w := mb.Index(2).Float64() - mb.Index(0).Float64(); w > 0 {
				return w
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth
}
