package kevinify

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	text := "email me@example.com now"
	spans := DetectSpans(text, ModeCompress)

	got := Split(text, spans)
	want := []Segment{
		{Text: "email "},
		{Text: "me@example.com", Protected: true, Kind: KindEmail},
		{Text: " now"},
	}

	if len(got) != len(want) {
		t.Fatalf("Split() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSplit_EdgeSpans(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		protected []bool
	}{
		{"span at start", "42 apples", []bool{true, false}},
		{"span at end", "apples 42", []bool{false, true}},
		{"only a span", "https://example.com", []bool{true}},
		{"no spans", "plain words", []bool{false}},
		{"adjacent spans merged", "@a #b", []bool{true}},
		{"empty", "", []bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Split(tt.text, DetectSpans(tt.text, ModeCompress))
			if len(segs) != len(tt.protected) {
				t.Fatalf("Split(%q) = %+v, want %d segments", tt.text, segs, len(tt.protected))
			}
			for i, seg := range segs {
				if seg.Protected != tt.protected[i] {
					t.Errorf("segment[%d] %q Protected = %v, want %v", i, seg.Text, seg.Protected, tt.protected[i])
				}
			}
		})
	}
}

func TestSplit_ReconstructsInput(t *testing.T) {
	inputs := []string{
		"Check out https://example.com and email me@example.com with questions.",
		"The people in the department need approximately 100 examples before production.",
		"@lead #ops ping 3.14 https://a.io/x?y=1,2 me@x.org!",
		"   leading and trailing   ",
		"",
		"naïve café 12 résumé",
	}

	for _, mode := range []Mode{ModeCompress, ModeExpand} {
		for _, in := range inputs {
			var sb strings.Builder
			for _, seg := range Split(in, DetectSpans(in, mode)) {
				sb.WriteString(seg.Text)
			}
			if sb.String() != in {
				t.Errorf("mode %d: reconstructed %q, want %q", mode, sb.String(), in)
			}
		}
	}
}
