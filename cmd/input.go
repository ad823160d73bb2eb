package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bimmerbailey/kevinify/internal/config"
	"github.com/bimmerbailey/kevinify/internal/output"
	"github.com/spf13/cobra"
)

// ErrNoInput is returned when a command gets no text from arguments, files
// or stdin.
var ErrNoInput = errors.New("no input: pass text as arguments, use --file, or pipe stdin")

// input is one piece of text to transform.
type input struct {
	Source string // file path; empty for arguments and stdin
	Text   string
}

func addFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("file", "F", []string{}, "read input from file(s) (repeatable, globs allowed)")
}

// readInputs gathers text in order of precedence: arguments joined by
// spaces, then --file, then piped stdin.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) > 0 {
		text := strings.Join(args, " ")
		if text == "" {
			return nil, noInput(cmd)
		}
		return []input{{Text: text}}, nil
	}

	patterns, _ := cmd.Flags().GetStringSlice("file")
	if len(patterns) > 0 {
		files, err := config.ResolveFiles(patterns)
		if err != nil {
			return nil, err
		}
		inputs := make([]input, 0, len(files))
		for _, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", f, err)
			}
			inputs = append(inputs, input{Source: f, Text: string(data)})
		}
		return inputs, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && output.IsTerminal(f) {
		return nil, noInput(cmd)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, noInput(cmd)
	}
	return []input{{Text: string(data)}}, nil
}

func noInput(cmd *cobra.Command) error {
	cmd.PrintErr(cmd.UsageString())
	return ErrNoInput
}

// sources lists the file names of inputs, skipping unnamed ones.
func sources(inputs []input) []string {
	var names []string
	for _, in := range inputs {
		if in.Source != "" {
			names = append(names, in.Source)
		}
	}
	return names
}
