// Package redact replaces secrets in text with short placeholders before the
// text is compressed or sent to a model.
//
// Placeholders look like hashtags (#SECRET_a3f2), so compression treats them
// as protected spans and leaves them intact. The same value always maps to
// the same placeholder within a Redactor, so the model can still tell that
// two mentions refer to one key.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Redactor removes sensitive data while preserving correlation between
// identical values. It is safe for concurrent use.
type Redactor struct {
	patterns []Pattern
	hashMap  map[string]string // original value -> placeholder
	mu       sync.RWMutex
}

// New creates a Redactor for the named patterns; no known names means
// DefaultPatterns.
func New(patternNames []string) *Redactor {
	patterns := GetPatterns(patternNames)
	if len(patterns) == 0 {
		patterns = GetPatterns(DefaultPatterns())
	}

	return &Redactor{
		patterns: patterns,
		hashMap:  make(map[string]string),
	}
}

// Redact replaces every match of the configured patterns.
//
//	"export OPENAI_API_KEY=sk-abc..."  ->  "export OPENAI_API_KEY= #OPENAI_KEY_5e0f"
func (r *Redactor) Redact(text string) string {
	out, _ := r.RedactAndCount(text)
	return out
}

// RedactAndCount redacts text and returns the number of replacements made.
func (r *Redactor) RedactAndCount(text string) (string, int) {
	count := 0
	for _, p := range r.patterns {
		var n int
		text, n = r.redactPattern(text, p)
		count += n
	}
	return text, count
}

// redactPattern replaces the matches of one pattern. A placeholder that would
// be glued to the preceding character gets a space in front, since hashtags
// are only protected at the start of a word.
func (r *Redactor) redactPattern(text string, p Pattern) (string, int) {
	locs := p.Regex.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text, 0
	}

	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		sb.WriteString(text[last:loc[0]])
		if loc[0] > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
			if !unicode.IsSpace(prev) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(r.placeholder(text[loc[0]:loc[1]], p.Type))
		last = loc[1]
	}
	sb.WriteString(text[last:])
	return sb.String(), len(locs)
}

// placeholder returns the placeholder for value, creating it on first use.
func (r *Redactor) placeholder(value, patternType string) string {
	r.mu.RLock()
	if ph, ok := r.hashMap[value]; ok {
		r.mu.RUnlock()
		return ph
	}
	r.mu.RUnlock()

	h := sha256.Sum256([]byte(value))
	ph := fmt.Sprintf("#%s_%s", patternType, hex.EncodeToString(h[:2]))

	r.mu.Lock()
	r.hashMap[value] = ph
	r.mu.Unlock()

	return ph
}

// Values returns a copy of every value redacted so far and its placeholder.
func (r *Redactor) Values() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]string, len(r.hashMap))
	for k, v := range r.hashMap {
		result[k] = v
	}
	return result
}

// IsSensitive reports whether text contains anything a pattern matches.
func (r *Redactor) IsSensitive(text string) bool {
	for _, p := range r.patterns {
		if p.Regex.MatchString(text) {
			return true
		}
	}
	return false
}
