package kevinify

import (
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Abbreviations maps a lowercase word or phrase to its abbreviation.
//
// Insertion order is preserved because it decides which full form wins when
// two entries share an abbreviation (see BuildReverse).
type Abbreviations struct {
	entries *orderedmap.OrderedMap[string, string]
}

// NewAbbreviations creates an empty abbreviation table.
func NewAbbreviations() *Abbreviations {
	return &Abbreviations{entries: orderedmap.New[string, string]()}
}

// Set adds or replaces an entry. Both sides are lowercased. Replacing an
// existing key keeps its original position.
func (a *Abbreviations) Set(full, abbr string) *Abbreviations {
	a.entries.Set(strings.ToLower(full), strings.ToLower(abbr))
	return a
}

// Lookup returns the abbreviation for word, matched case-insensitively.
func (a *Abbreviations) Lookup(word string) (string, bool) {
	return a.entries.Get(strings.ToLower(word))
}

// Len returns the number of entries.
func (a *Abbreviations) Len() int {
	return a.entries.Len()
}

// Each calls fn for every entry in insertion order.
func (a *Abbreviations) Each(fn func(full, abbr string)) {
	for pair := a.entries.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Clone returns an independent copy.
func (a *Abbreviations) Clone() *Abbreviations {
	c := NewAbbreviations()
	a.Each(func(full, abbr string) {
		c.entries.Set(full, abbr)
	})
	return c
}

// Merge returns a copy of a with overrides applied. Keys new to the table are
// appended in sorted order so the result does not depend on map iteration.
func (a *Abbreviations) Merge(overrides map[string]string) *Abbreviations {
	c := a.Clone()
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.Set(k, overrides[k])
	}
	return c
}

// MaxPhraseWords returns the word count of the longest key.
func (a *Abbreviations) MaxPhraseWords() int {
	longest := 0
	a.Each(func(full, _ string) {
		if n := len(strings.Fields(full)); n > longest {
			longest = n
		}
	})
	return longest
}

// CollisionPolicy decides which full form a shared abbreviation expands to.
type CollisionPolicy int

const (
	// LastWriteWins keeps the entry added last.
	LastWriteWins CollisionPolicy = iota
	// FirstWriteWins keeps the entry added first.
	FirstWriteWins
)

// ParseCollisionPolicy converts "first" or "last" to a policy, defaulting to
// LastWriteWins.
func ParseCollisionPolicy(s string) CollisionPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "first") {
		return FirstWriteWins
	}
	return LastWriteWins
}

// String returns "first" or "last".
func (p CollisionPolicy) String() string {
	if p == FirstWriteWins {
		return "first"
	}
	return "last"
}

// BuildReverse inverts an abbreviation table into abbreviation -> full form.
// The returned map is owned by the caller.
func BuildReverse(a *Abbreviations, policy CollisionPolicy) map[string]string {
	reverse := make(map[string]string, a.Len())
	a.Each(func(full, abbr string) {
		if _, seen := reverse[abbr]; seen && policy == FirstWriteWins {
			return
		}
		reverse[abbr] = full
	})
	return reverse
}

// WordSet is a set of lowercase words.
type WordSet map[string]struct{}

// NewWordSet builds a set from words, lowercasing each one.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

// Has reports whether word is in the set, ignoring case.
func (s WordSet) Has(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// Union returns a new set holding s plus words.
func (s WordSet) Union(words ...string) WordSet {
	u := make(WordSet, len(s)+len(words))
	for w := range s {
		u[w] = struct{}{}
	}
	for _, w := range words {
		u[strings.ToLower(w)] = struct{}{}
	}
	return u
}

// Words returns the set members in sorted order.
func (s WordSet) Words() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Built-in tables. Never mutated after init; the exported accessors hand out
// copies.
var (
	defaultAbbreviations = buildDefaultAbbreviations()

	defaultStopwords = NewWordSet(
		"a", "an", "the",
		"just", "really", "very",
		"that", "those", "these",
		"some", "any",
		"so", "quite", "rather",
		"actually", "basically", "literally",
		"like", "kind", "sort",
		"perhaps", "maybe",
	)

	// Acronyms and short technical words that read worse without vowels.
	defaultProtectWords = NewWordSet(
		"llm", "api", "id", "ui", "ux", "db", "sql", "nosql",
		"http", "https", "json", "xml", "yaml", "csv",
	)
)

func buildDefaultAbbreviations() *Abbreviations {
	pairs := [][2]string{
		{"please", "pls"},
		{"thanks", "thx"},
		{"thank you", "ty"},
		{"you're", "ur"},
		{"you are", "ur"},
		{"people", "ppl"},
		{"message", "msg"},
		{"between", "btwn"},
		{"before", "b4"},
		{"great", "gr8"},
		{"for", "4"},
		{"to", "2"},
		{"and", "&"},
		{"with", "w/"},
		{"without", "w/o"},
		{"because", "cuz"},
		{"about", "abt"},
		{"really", "rly"},
		{"probably", "prob"},
		{"approximately", "approx"},
		{"information", "info"},
		{"documentation", "docs"},
		{"example", "ex"},
		{"questions", "qs"},
		{"application", "app"},
		{"administrator", "admin"},
		{"department", "dept"},
		{"management", "mgmt"},
		{"development", "dev"},
		{"production", "prod"},
	}

	a := NewAbbreviations()
	for _, p := range pairs {
		a.Set(p[0], p[1])
	}
	return a
}

// DefaultAbbreviations returns a copy of the built-in abbreviation table.
func DefaultAbbreviations() *Abbreviations {
	return defaultAbbreviations.Clone()
}

// DefaultStopwords returns a copy of the built-in stopword set.
func DefaultStopwords() WordSet {
	return defaultStopwords.Union()
}

// DefaultProtectWords returns a copy of the built-in set of words that are
// never vowel-stripped.
func DefaultProtectWords() WordSet {
	return defaultProtectWords.Union()
}
