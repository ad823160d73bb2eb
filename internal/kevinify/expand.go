package kevinify

import "strings"

// Expand rewrites known abbreviations back to their full form, mirroring the
// case of each abbreviation. It cannot restore dropped stopwords or stripped
// vowels, so Expand(Compress(s)) is generally not s.
//
// Single digits are not protected here because "4" and "2" are
// abbreviations; numbers of two or more digits are.
func Expand(text string, opts *ExpandOptions) string {
	o := opts.resolve()
	normalized := normalizeSpace(text)
	if normalized == "" {
		return ""
	}

	reverse := BuildReverse(o.Abbreviations, o.Collision)

	var spans []Span
	if o.PreserveEntities {
		spans = DetectSpans(normalized, ModeExpand)
	}

	segments := Split(normalized, spans)
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Protected {
			parts = append(parts, seg.Text)
			continue
		}

		var out []string
		for token := range expandTokenizer.All(seg.Text) {
			out = append(out, expandToken(token, reverse))
		}
		parts = append(parts, strings.Join(out, " "))
	}

	return normalizeSpace(strings.Join(parts, " "))
}

// expandToken maps one token through the reverse table.
func expandToken(token string, reverse map[string]string) string {
	full, ok := reverse[strings.ToLower(token)]
	if !ok {
		return token
	}

	switch token {
	case "&", "w/", "w/o":
		return full
	}

	// Bare digits ("4", "2") carry no case to mirror.
	if !hasLetter(token) {
		return full
	}
	return MatchCase(token, full)
}
