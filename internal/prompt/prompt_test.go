package prompt_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/bimmerbailey/kevinify/internal/llm"
	"github.com/bimmerbailey/kevinify/internal/prompt"
)

const testCompressed = "pls send me docs abt new api ftrs"

// TestBuild_RequiresCompressed verifies that ErrMissingField is returned when
// Compressed is empty or blank, for every PromptType.
func TestBuild_RequiresCompressed(t *testing.T) {
	for _, pt := range []prompt.PromptType{prompt.TypeAnswer, prompt.TypeRestore} {
		for _, in := range []string{"", "  \n"} {
			t.Run(string(pt), func(t *testing.T) {
				_, err := prompt.Build(pt, prompt.BuildOptions{Compressed: in})
				if !errors.Is(err, prompt.ErrMissingField) {
					t.Errorf("expected ErrMissingField, got %v", err)
				}
			})
		}
	}
}

func TestBuild_MessageStructure(t *testing.T) {
	for _, pt := range []prompt.PromptType{prompt.TypeAnswer, prompt.TypeRestore} {
		t.Run(string(pt), func(t *testing.T) {
			msgs, err := prompt.Build(pt, prompt.BuildOptions{Compressed: testCompressed})
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if len(msgs) != 2 {
				t.Fatalf("got %d messages, want 2", len(msgs))
			}
			if msgs[0].Role != llm.RoleSystem || msgs[1].Role != llm.RoleUser {
				t.Errorf("roles = %q, %q", msgs[0].Role, msgs[1].Role)
			}
			if !strings.Contains(msgs[1].Content, testCompressed) {
				t.Errorf("user message missing compressed text: %q", msgs[1].Content)
			}
		})
	}
}

func TestBuild_SystemPromptPerType(t *testing.T) {
	answer, _ := prompt.Build(prompt.TypeAnswer, prompt.BuildOptions{Compressed: testCompressed})
	restore, _ := prompt.Build(prompt.TypeRestore, prompt.BuildOptions{Compressed: testCompressed})

	if answer[0].Content == restore[0].Content {
		t.Error("answer and restore should use different system prompts")
	}
	if !strings.Contains(restore[0].Content, "Output ONLY the rewritten text") {
		t.Errorf("restore system prompt = %q", restore[0].Content)
	}
	if !strings.HasPrefix(restore[1].Content, "Rewrite the following text:") {
		t.Errorf("restore user message = %q", restore[1].Content)
	}
	if answer[1].Content != testCompressed {
		t.Errorf("answer user message = %q, want the bare compressed text", answer[1].Content)
	}
}

func TestBuild_Glossary(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		notWant []string
	}{
		{
			name: "abbreviations in order of appearance",
			text: testCompressed,
			want: []string{"- pls = please\n- docs = documentation\n- abt = about"},
		},
		{
			name:    "symbols listed, protected spans skipped",
			text:    "check out https://example.com/docs & email me@example.com w/ qs",
			want:    []string{"- & = and", "- w/ = with", "- qs = questions"},
			notWant: []string{"documentation"},
		},
		{
			name:    "single digits are abbreviations, longer numbers are not",
			text:    "ty 4 the 10 tips",
			want:    []string{"- ty = thank you", "- 4 = for"},
			notWant: []string{"10 ="},
		},
		{
			name:    "repeated abbreviation listed once",
			text:    "pls pls PLS",
			want:    []string{"- pls = please"},
			notWant: []string{"please\n- pls"},
		},
		{
			name:    "no abbreviations means no glossary",
			text:    "hello world",
			notWant: []string{"Abbreviations used"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := prompt.Build(prompt.TypeAnswer, prompt.BuildOptions{Compressed: tt.text})
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			system := msgs[0].Content
			for _, w := range tt.want {
				if !strings.Contains(system, w) {
					t.Errorf("system prompt missing %q:\n%s", w, system)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(system, nw) {
					t.Errorf("system prompt should not contain %q:\n%s", nw, system)
				}
			}
		})
	}
}

func TestBuild_CustomAbbreviations(t *testing.T) {
	abbrs := kevinify.NewAbbreviations().Set("kubernetes", "k8s")

	msgs, err := prompt.Build(prompt.TypeAnswer, prompt.BuildOptions{
		Compressed:    "deploy k8s pls",
		Abbreviations: abbrs,
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !strings.Contains(msgs[0].Content, "- k8s = kubernetes") {
		t.Errorf("custom entry missing:\n%s", msgs[0].Content)
	}
	if strings.Contains(msgs[0].Content, "- pls") {
		t.Errorf("entries outside the given table should not be listed:\n%s", msgs[0].Content)
	}
}

func TestBuild_FilesAndInstruction(t *testing.T) {
	tests := []struct {
		name  string
		opts  prompt.BuildOptions
		wants []string
	}{
		{
			name:  "single file",
			opts:  prompt.BuildOptions{Compressed: testCompressed, Files: []string{"notes.txt"}},
			wants: []string{"Source file: notes.txt"},
		},
		{
			name:  "multiple files",
			opts:  prompt.BuildOptions{Compressed: testCompressed, Files: []string{"a.txt", "b.txt"}},
			wants: []string{"Source files (2): a.txt, b.txt"},
		},
		{
			name:  "instruction appended",
			opts:  prompt.BuildOptions{Compressed: testCompressed, Instruction: "Reply in one sentence."},
			wants: []string{testCompressed + "\n\nReply in one sentence."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := prompt.Build(prompt.TypeAnswer, tt.opts)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			for _, w := range tt.wants {
				if !strings.Contains(msgs[1].Content, w) {
					t.Errorf("user message missing %q:\n%s", w, msgs[1].Content)
				}
			}
		})
	}
}

func TestParsePromptType(t *testing.T) {
	tests := []struct {
		in      string
		want    prompt.PromptType
		wantErr bool
	}{
		{"answer", prompt.TypeAnswer, false},
		{"restore", prompt.TypeRestore, false},
		{"", prompt.TypeAnswer, false},
		{"summarize", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := prompt.ParsePromptType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePromptType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePromptType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
