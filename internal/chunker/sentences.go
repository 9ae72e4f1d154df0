package chunker

import (
	"regexp"
	"strings"
)

var sentenceSplitter = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Sentences splits a paragraph into sentences for micro-search. Returns nil
// when the text contains no sentence terminator; callers fall back to the
// whole paragraph in that case.
func Sentences(text string) []string {
	matches := sentenceSplitter.FindAllString(text, -1)
	sentences := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		sentences = append(sentences, m)
	}
	if len(sentences) == 0 {
		return nil
	}
	return sentences
}
