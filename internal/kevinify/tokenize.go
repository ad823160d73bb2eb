package kevinify

import (
	"iter"
	"regexp"
	"slices"
)

// Grammar selects the token rules of a Tokenizer.
type Grammar int

const (
	// GrammarCompress matches letter/digit runs with an optional
	// apostrophe suffix, so "don't" stays one token.
	GrammarCompress Grammar = iota
	// GrammarExpand also matches the symbolic abbreviations "w/o", "w/"
	// and "&". Alternation is leftmost-first, so "w/o" wins over "w/".
	GrammarExpand
)

var (
	compressTokenRegex = regexp.MustCompile(`[A-Za-z0-9]+(?:'[A-Za-z]+)?`)
	expandTokenRegex   = regexp.MustCompile(`w/o|w/|&|[A-Za-z0-9]+(?:'[A-Za-z]+)?`)

	// Punctuation that separates words before compression tokenizing.
	punctuationRunRegex = regexp.MustCompile(`[.,;:!?()\[\]{}]+`)
)

// Tokenizer extracts word-like tokens from a free-text chunk. Characters
// that match no rule, including non-ASCII letters, act as separators.
type Tokenizer struct {
	re *regexp.Regexp
}

var (
	compressTokenizer = &Tokenizer{re: compressTokenRegex}
	expandTokenizer   = &Tokenizer{re: expandTokenRegex}
)

// NewTokenizer returns the tokenizer for g.
func NewTokenizer(g Grammar) *Tokenizer {
	if g == GrammarExpand {
		return expandTokenizer
	}
	return compressTokenizer
}

// All yields the tokens of chunk left to right. Each range over the
// returned sequence scans chunk from the start again.
func (t *Tokenizer) All(chunk string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := chunk
		for {
			loc := t.re.FindStringIndex(rest)
			if loc == nil {
				return
			}
			if !yield(rest[loc[0]:loc[1]]) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// Tokens returns all tokens of chunk.
func (t *Tokenizer) Tokens(chunk string) []string {
	return slices.Collect(t.All(chunk))
}

// StripPunctuation replaces each run of sentence punctuation and brackets
// with a single space.
func StripPunctuation(chunk string) string {
	return punctuationRunRegex.ReplaceAllString(chunk, " ")
}
