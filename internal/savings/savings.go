// Package savings estimates how much a compressed text saves over its
// original when sent to a token-metered API.
package savings

import (
	"fmt"
	"unicode/utf8"
)

// charsPerToken is the usual rule of thumb for English text.
const charsPerToken = 4

// Report compares an original text with its compressed form.
type Report struct {
	Original   string `json:"original,omitempty"`
	Compressed string `json:"compressed,omitempty"`

	OriginalChars   int `json:"original_chars"`
	CompressedChars int `json:"compressed_chars"`

	OriginalTokens   int `json:"original_tokens"`
	CompressedTokens int `json:"compressed_tokens"`
	SavedTokens      int `json:"saved_tokens"`

	// PercentSaved is the share of characters removed, 0 for empty input.
	PercentSaved float64 `json:"percent_saved"`
}

// EstimateTokens returns a rough token count: one token per four characters,
// rounded up.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + charsPerToken - 1) / charsPerToken
}

// Measure builds a Report for original and its compressed form.
func Measure(original, compressed string) Report {
	r := Report{
		Original:        original,
		Compressed:      compressed,
		OriginalChars:   utf8.RuneCountInString(original),
		CompressedChars: utf8.RuneCountInString(compressed),
	}
	r.fill()
	return r
}

// Total sums several reports. The texts are not carried over.
func Total(reports ...Report) Report {
	var t Report
	for _, r := range reports {
		t.OriginalChars += r.OriginalChars
		t.CompressedChars += r.CompressedChars
	}
	t.fill()
	return t
}

func (r *Report) fill() {
	r.OriginalTokens = (r.OriginalChars + charsPerToken - 1) / charsPerToken
	r.CompressedTokens = (r.CompressedChars + charsPerToken - 1) / charsPerToken
	r.SavedTokens = r.OriginalTokens - r.CompressedTokens
	if r.OriginalChars > 0 {
		r.PercentSaved = (1 - float64(r.CompressedChars)/float64(r.OriginalChars)) * 100
	}
}

// WithinBudget reports whether the compressed text fits in limit tokens.
// A limit of zero or less means no limit.
func (r Report) WithinBudget(limit int) bool {
	return limit <= 0 || r.CompressedTokens <= limit
}

// String returns a human-readable summary.
func (r Report) String() string {
	return fmt.Sprintf(
		"Characters: %d -> %d (%.1f%% fewer)\n"+
			"Estimated tokens: ~%d -> ~%d (%d saved)",
		r.OriginalChars, r.CompressedChars, r.PercentSaved,
		r.OriginalTokens, r.CompressedTokens, r.SavedTokens,
	)
}
