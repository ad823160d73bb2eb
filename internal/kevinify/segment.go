package kevinify

// Segment is one piece of text as cut by Split: either free text that the
// transforms may rewrite, or a protected span passed through verbatim.
type Segment struct {
	Text      string
	Protected bool
	Kind      SpanKind // set for protected segments only
}

// Split partitions text around spans, which must be sorted and
// non-overlapping as returned by DetectSpans. Joining the Text of every
// segment in order yields text again.
func Split(text string, spans []Span) []Segment {
	segments := make([]Segment, 0, 2*len(spans)+1)
	idx := 0

	for _, s := range spans {
		if idx < s.Start {
			segments = append(segments, Segment{Text: text[idx:s.Start]})
		}
		segments = append(segments, Segment{Text: s.Text, Protected: true, Kind: s.Kind})
		idx = s.End
	}

	if idx < len(text) {
		segments = append(segments, Segment{Text: text[idx:]})
	}
	return segments
}
