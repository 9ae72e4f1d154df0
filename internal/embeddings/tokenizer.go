package embeddings

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Special tokens of the BERT-family vocabularies all-MiniLM ships with.
const (
	tokenCLS = "[CLS]"
	tokenSEP = "[SEP]"
	tokenUNK = "[UNK]"
	tokenPAD = "[PAD]"
)

// maxWordChars caps the length of a single word before it is mapped to
// [UNK] outright, matching the BERT tokenizer's max_input_chars_per_word.
const maxWordChars = 100

// wordPieceTokenizer is a greedy longest-match-first WordPiece tokenizer
// over a vocab.txt file (one token per line, line number = id).
type wordPieceTokenizer struct {
	vocab map[string]int64
	cls   int64
	sep   int64
	unk   int64
}

// loadWordPiece reads a vocab.txt file and resolves the special tokens.
func loadWordPiece(path string) (*wordPieceTokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	sc := bufio.NewScanner(f)
	var id int64
	for sc.Scan() {
		vocab[strings.TrimSpace(sc.Text())] = id
		id++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}

	t := &wordPieceTokenizer{vocab: vocab}
	var ok bool
	if t.cls, ok = vocab[tokenCLS]; !ok {
		return nil, fmt.Errorf("vocab is missing %s", tokenCLS)
	}
	if t.sep, ok = vocab[tokenSEP]; !ok {
		return nil, fmt.Errorf("vocab is missing %s", tokenSEP)
	}
	if t.unk, ok = vocab[tokenUNK]; !ok {
		return nil, fmt.Errorf("vocab is missing %s", tokenUNK)
	}
	return t, nil
}

// Encode converts text into model input ids: [CLS] pieces... [SEP],
// truncated so the result never exceeds maxLen ids.
func (t *wordPieceTokenizer) Encode(text string, maxLen int) []int64 {
	words := basicTokenize(text)

	ids := make([]int64, 0, maxLen)
	ids = append(ids, t.cls)
	for _, word := range words {
		for _, id := range t.wordPiece(word) {
			if len(ids) >= maxLen-1 {
				break
			}
			ids = append(ids, id)
		}
		if len(ids) >= maxLen-1 {
			break
		}
	}
	ids = append(ids, t.sep)
	return ids
}

// wordPiece splits a single lowercased word into vocabulary pieces using
// greedy longest-match. Continuation pieces carry the "##" prefix. A word
// with no valid split maps to a single [UNK].
func (t *wordPieceTokenizer) wordPiece(word string) []int64 {
	runes := []rune(word)
	if len(runes) > maxWordChars {
		return []int64{t.unk}
	}

	var pieces []int64
	start := 0
	for start < len(runes) {
		end := len(runes)
		var matched int64 = -1
		for end > start {
			piece := string(runes[start:end])
			if start > 0 {
				piece = "##" + piece
			}
			if id, ok := t.vocab[piece]; ok {
				matched = id
				break
			}
			end--
		}
		if matched < 0 {
			return []int64{t.unk}
		}
		pieces = append(pieces, matched)
		start = end
	}
	return pieces
}

// basicTokenize lowercases the text and splits it into words, treating
// every punctuation or symbol rune as its own token, the way the BERT
// basic tokenizer handles uncased models.
func basicTokenize(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			words = append(words, string(r))
		case r == unicode.ReplacementChar || unicode.IsControl(r):
			// drop
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}
