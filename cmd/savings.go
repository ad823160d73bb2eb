package cmd

import (
	"fmt"
	"strings"

	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/bimmerbailey/kevinify/internal/output"
	"github.com/bimmerbailey/kevinify/internal/savings"
	"github.com/spf13/cobra"
)

var savingsCmd = &cobra.Command{
	Use:   "savings [text...]",
	Short: "Show how many characters and tokens compression saves",
	Long: `Compress each input and report character counts, estimated tokens
(about four characters per token) and the share saved.

With several files a total is printed at the end.

Examples:
  kevinify savings "The people in the department need approximately 100 examples before production."
  kevinify savings --file 'prompts/*.txt' --format table
  kevinify savings --keep-stopwords --file prompt.txt`,
	RunE: runSavings,
}

func init() {
	addCompressFlags(savingsCmd)
	addFileFlag(savingsCmd)

	rootCmd.AddCommand(savingsCmd)
}

func runSavings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	opts := compressOptions(cmd, cfg)
	rows := make([]output.SavingsRow, len(inputs))
	for i, in := range inputs {
		text := strings.TrimSpace(in.Text)
		report := savings.Measure(text, kevinify.Compress(text, &opts))
		rows[i] = output.SavingsRow{Source: in.Source, Report: report}
		logSavings(logger, in.Source, report)
	}

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(cfg.Format)).
		WithColor(output.ParseColorMode(cfg.Color))
	if err := writer.WriteSavings(rows); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
