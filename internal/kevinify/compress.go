package kevinify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Collapses spacing around a standalone ampersand.
var spacedAmpersandRegex = regexp.MustCompile(`\s+&\s+`)

// Compress shortens text by rewriting "and" to "&", substituting
// abbreviations, dropping stopwords, vowel-stripping long words and
// lowercasing. Protected spans pass through unchanged. Lossy.
//
// Example:
//
//	kevinify.Compress("Please send me the documentation about the new API features.", nil)
//	// "pls send me docs abt new api ftrs"
func Compress(text string, opts *CompressOptions) string {
	o := opts.resolve()
	normalized := normalizeSpace(text)
	if normalized == "" {
		return ""
	}

	var spans []Span
	if o.PreserveEntities {
		spans = DetectSpans(normalized, ModeCompress)
	}

	segments := Split(normalized, spans)
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Protected {
			parts = append(parts, seg.Text)
			continue
		}
		parts = append(parts, strings.Join(o.compressChunk(seg.Text), " "))
	}

	joined := normalizeSpace(strings.Join(parts, " "))
	return spacedAmpersandRegex.ReplaceAllString(joined, " & ")
}

// compressChunk runs the per-token pipeline over one free-text chunk and
// returns the surviving tokens.
func (o *CompressOptions) compressChunk(chunk string) []string {
	tokens := compressTokenizer.Tokens(StripPunctuation(chunk))
	out := make([]string, 0, len(tokens))

	maxPhrase := 0
	if o.PhraseAbbreviations {
		maxPhrase = o.Abbreviations.MaxPhraseWords()
	}

	for i := 0; i < len(tokens); i++ {
		if maxPhrase > 1 {
			if abbr, n, ok := o.lookupPhrase(tokens[i:], maxPhrase); ok {
				if word, keep := o.finish(o.substitute(tokens[i], abbr)); keep {
					out = append(out, word)
				}
				i += n - 1
				continue
			}
		}

		if word, keep := o.compressToken(tokens[i]); keep {
			out = append(out, word)
		}
	}
	return out
}

// compressToken applies the ampersand rewrite and abbreviation lookup to a
// single token, then finishes it. keep is false when the token is dropped.
func (o *CompressOptions) compressToken(token string) (word string, keep bool) {
	if o.AggressiveAmpersand && strings.EqualFold(token, "and") {
		return "&", true
	}

	word = token
	if abbr, ok := o.Abbreviations.Lookup(token); ok {
		word = o.substitute(token, abbr)
	}
	return o.finish(word)
}

// finish runs stopword elision, shortening and case normalization.
func (o *CompressOptions) finish(word string) (string, bool) {
	if o.RemoveStopwords && o.Stopwords.Has(word) {
		return "", false
	}
	if o.ShortenLongWords {
		word = o.shorten(word)
	}
	if !o.KeepCase {
		word = strings.ToLower(word)
	}
	return word, true
}

// substitute returns abbr in place of source. With KeepCase, word-like
// abbreviations take the case of source so "PLEASE" becomes "PLS"; symbolic
// ones such as "&" or "w/" are returned as they are.
func (o *CompressOptions) substitute(source, abbr string) string {
	if o.KeepCase && isWordLike(abbr) {
		return MatchCase(source, abbr)
	}
	return abbr
}

// shorten vowel-strips word when it is long enough and not protected. A
// stripped form shorter than minShortenedLength is rejected.
func (o *CompressOptions) shorten(word string) string {
	if utf8.RuneCountInString(word) < o.MinLengthToShorten {
		return word
	}
	if o.ProtectWords.Has(word) {
		return word
	}

	stripped := StripVowels(word)
	if utf8.RuneCountInString(stripped) < minShortenedLength {
		return word
	}
	return MatchCase(word, stripped)
}

// lookupPhrase tries the longest run of up to maxWords tokens (at least two)
// against the abbreviation table.
func (o *CompressOptions) lookupPhrase(tokens []string, maxWords int) (abbr string, n int, ok bool) {
	if maxWords > len(tokens) {
		maxWords = len(tokens)
	}
	for n = maxWords; n > 1; n-- {
		if abbr, ok = o.Abbreviations.Lookup(strings.Join(tokens[:n], " ")); ok {
			return abbr, n, true
		}
	}
	return "", 0, false
}

// normalizeSpace collapses every run of whitespace to one space and trims
// the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
