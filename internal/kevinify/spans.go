package kevinify

import (
	"regexp"
	"sort"
)

// SpanKind names the recognizer that produced a protected span.
type SpanKind string

const (
	KindURL     SpanKind = "url"
	KindEmail   SpanKind = "email"
	KindMention SpanKind = "mention"
	KindHashtag SpanKind = "hashtag"
	KindNumber  SpanKind = "number"
)

// Mode selects which recognizers DetectSpans runs.
type Mode int

const (
	// ModeCompress protects numbers of any length.
	ModeCompress Mode = iota
	// ModeExpand protects only numbers of two or more digits, since single
	// digits double as abbreviations ("4", "2").
	ModeExpand
)

// Span is a half-open byte range of the input that must pass through a
// transform unmodified.
type Span struct {
	Start int
	End   int
	Text  string
	Kind  SpanKind
}

// Recognizer pairs a span kind with the pattern that finds it.
type Recognizer struct {
	Kind  SpanKind
	Regex *regexp.Regexp
}

var (
	// https://example.com/path?q=1 up to the next whitespace
	urlRegex = regexp.MustCompile(`(?i)\bhttps?://\S+`)

	// user.name+tag@example.co.uk
	emailRegex = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)

	// @handle and #topic, only at the start of the text or after whitespace.
	// The match includes the leading whitespace.
	mentionRegex = regexp.MustCompile(`(?:^|\s)@[A-Za-z0-9_]+`)
	hashtagRegex = regexp.MustCompile(`(?:^|\s)#[A-Za-z0-9_]+`)

	// 7, 100, 3.14, 1,000
	numberRegex = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\b`)

	// 10, 100, 3.14 but not 4
	multiDigitNumberRegex = regexp.MustCompile(`\b\d{2,}(?:[.,]\d+)?\b`)
)

var (
	compressRecognizers = []Recognizer{
		{Kind: KindURL, Regex: urlRegex},
		{Kind: KindEmail, Regex: emailRegex},
		{Kind: KindMention, Regex: mentionRegex},
		{Kind: KindHashtag, Regex: hashtagRegex},
		{Kind: KindNumber, Regex: numberRegex},
	}

	expandRecognizers = []Recognizer{
		{Kind: KindURL, Regex: urlRegex},
		{Kind: KindEmail, Regex: emailRegex},
		{Kind: KindMention, Regex: mentionRegex},
		{Kind: KindHashtag, Regex: hashtagRegex},
		{Kind: KindNumber, Regex: multiDigitNumberRegex},
	}
)

// Recognizers returns the recognizers used for mode, in the order they run.
func Recognizers(mode Mode) []Recognizer {
	if mode == ModeExpand {
		return expandRecognizers
	}
	return compressRecognizers
}

// DetectSpans finds every protected region of text. The result is sorted by
// Start and no two spans overlap or touch.
func DetectSpans(text string, mode Mode) []Span {
	var spans []Span
	for _, r := range Recognizers(mode) {
		for _, loc := range r.Regex.FindAllStringIndex(text, -1) {
			spans = append(spans, Span{
				Start: loc[0],
				End:   loc[1],
				Text:  text[loc[0]:loc[1]],
				Kind:  r.Kind,
			})
		}
	}
	return mergeSpans(text, spans)
}

// mergeSpans sorts spans by start and folds every span that starts at or
// before the end of the current one into it. The merged span keeps the kind
// of its earliest match.
func mergeSpans(text string, spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	merged := make([]Span, 0, len(spans))
	current := spans[0]
	for _, s := range spans[1:] {
		if s.Start <= current.End {
			if s.End > current.End {
				current.End = s.End
				current.Text = text[current.Start:current.End]
			}
			continue
		}
		merged = append(merged, current)
		current = s
	}
	return append(merged, current)
}
