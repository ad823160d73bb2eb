package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bimmerbailey/kevinify/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const tailTestLog = `user: Please send me the documentation.
bot: Thanks for the great questions.
user: The people in the department need examples.
bot: I will send information before production.
`

func newTailTestCmd(out, errOut *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "tail"}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	addTailFlags(cmd)
	_ = cmd.Flags().Set("no-follow", "true")
	return cmd
}

func TestTailNoFollow(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
		want  []string
	}{
		{
			name: "all lines compressed",
			want: []string{
				"user pls send me docs",
				"bot thx 4 gr8 qs",
				"user ppl in dept need exmpls",
				"bot i will send info b4 prod",
			},
		},
		{
			name:  "last two lines",
			flags: map[string]string{"lines": "2"},
			want: []string{
				"user ppl in dept need exmpls",
				"bot i will send info b4 prod",
			},
		},
		{
			name:  "pattern matches the original line",
			flags: map[string]string{"pattern": "^user:"},
			want: []string{
				"user pls send me docs",
				"user ppl in dept need exmpls",
			},
		},
		{
			name:  "keep case",
			flags: map[string]string{"pattern": "^bot: T", "keep-case": "true"},
			want:  []string{"bot Thx 4 gr8 qs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)
			path := writeTempFile(t, t.TempDir(), "chat.log", tailTestLog)

			var out, errOut bytes.Buffer
			cmd := newTailTestCmd(&out, &errOut)
			for k, v := range tt.flags {
				if err := cmd.Flags().Set(k, v); err != nil {
					t.Fatalf("Set(%s) error = %v", k, err)
				}
			}

			if err := runTail(cmd, []string{path}); err != nil {
				t.Fatalf("runTail() error = %v", err)
			}

			got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("output =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestTailJSON(t *testing.T) {
	resetConfig(t)
	viper.Set("format", "json")
	path := writeTempFile(t, t.TempDir(), "chat.log", tailTestLog)

	var out, errOut bytes.Buffer
	cmd := newTailTestCmd(&out, &errOut)
	_ = cmd.Flags().Set("lines", "1")

	if err := runTail(cmd, []string{path}); err != nil {
		t.Fatalf("runTail() error = %v", err)
	}

	var result output.Result
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if result.Input != "bot: I will send information before production." {
		t.Errorf("Input = %q", result.Input)
	}
	if result.Output != "bot i will send info b4 prod" || result.Mode != "compress" {
		t.Errorf("result = %+v", result)
	}
}

func TestTailErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		resetConfig(t)
		var out, errOut bytes.Buffer
		cmd := newTailTestCmd(&out, &errOut)

		err := runTail(cmd, []string{filepath.Join(t.TempDir(), "nope.log")})
		if err == nil || !strings.Contains(err.Error(), "file does not exist") {
			t.Errorf("runTail() error = %v", err)
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		resetConfig(t)
		path := writeTempFile(t, t.TempDir(), "chat.log", tailTestLog)

		var out, errOut bytes.Buffer
		cmd := newTailTestCmd(&out, &errOut)
		_ = cmd.Flags().Set("pattern", "[unclosed")

		err := runTail(cmd, []string{path})
		if err == nil || !strings.Contains(err.Error(), "invalid pattern") {
			t.Errorf("runTail() error = %v", err)
		}
	})
}
