package kevinify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchCase gives repl the case pattern of original: all caps when original
// is all caps and longer than one character, capitalized when original starts
// with an uppercase letter, unchanged otherwise.
func MatchCase(original, repl string) string {
	if original == "" || repl == "" {
		return repl
	}
	if utf8.RuneCountInString(original) > 1 && original == strings.ToUpper(original) {
		return strings.ToUpper(repl)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		return capitalize(repl)
	}
	return repl
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// isWordLike reports whether s is made of letters and digits only and holds
// at least one letter. Symbolic abbreviations like "&" or "w/" are not.
func isWordLike(s string) bool {
	if !hasLetter(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// StripVowels lowercases word and drops every a/e/i/o/u between its first
// and last character.
func StripVowels(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) < 3 {
		return string(runes)
	}

	out := make([]rune, 0, len(runes))
	out = append(out, runes[0])
	for _, r := range runes[1 : len(runes)-1] {
		if !isVowel(r) {
			out = append(out, r)
		}
	}
	return string(append(out, runes[len(runes)-1]))
}
