package cmd

import (
	"fmt"
	"log/slog"

	"github.com/bimmerbailey/kevinify/internal/config"
	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/bimmerbailey/kevinify/internal/output"
	"github.com/bimmerbailey/kevinify/internal/redact"
	"github.com/bimmerbailey/kevinify/internal/savings"
	"github.com/spf13/cobra"
)

var compressCmd = &cobra.Command{
	Use:   "compress [text...]",
	Short: "Compress text into token-saving shorthand",
	Long: `Compress English text by abbreviating common words, dropping filler
words and stripping vowels from long words.

Input is taken from the arguments, then --file, then piped stdin.

Examples:
  kevinify compress "Please send me the documentation about the new API features."
  kevinify compress --keep-case --keep-stopwords "Thanks for the great example"
  kevinify compress --file prompt.txt --format json
  cat notes.md | kevinify compress`,
	RunE: runCompress,
}

func init() {
	addCompressFlags(compressCmd)
	addRedactFlag(compressCmd)
	addFileFlag(compressCmd)

	rootCmd.AddCommand(compressCmd)
}

// addCompressFlags registers the flags that tune compression. They override
// the compress section of the config file.
func addCompressFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("keep-stopwords", false, "keep filler words such as \"the\" and \"just\"")
	cmd.Flags().Bool("no-preserve", false, "do not protect URLs, emails, mentions, hashtags and numbers")
	cmd.Flags().Bool("keep-case", false, "keep the original capitalization")
	cmd.Flags().Bool("no-shorten", false, "do not strip vowels from long words")
	cmd.Flags().Int("min-length", 0, "shortest word to strip vowels from (default from config, 6)")
	cmd.Flags().Bool("no-ampersand", false, "do not force \"and\" to \"&\"")
	cmd.Flags().Bool("phrases", false, "also abbreviate multi-word phrases such as \"thank you\"")
}

// compressOptions applies the compression flags on top of cfg.
func compressOptions(cmd *cobra.Command, cfg *config.Config) kevinify.CompressOptions {
	opts := cfg.CompressOptions()

	if v, _ := cmd.Flags().GetBool("keep-stopwords"); v {
		opts.RemoveStopwords = false
	}
	if v, _ := cmd.Flags().GetBool("no-preserve"); v {
		opts.PreserveEntities = false
	}
	if v, _ := cmd.Flags().GetBool("keep-case"); v {
		opts.KeepCase = true
	}
	if v, _ := cmd.Flags().GetBool("no-shorten"); v {
		opts.ShortenLongWords = false
	}
	if cmd.Flags().Changed("min-length") {
		opts.MinLengthToShorten, _ = cmd.Flags().GetInt("min-length")
	}
	if v, _ := cmd.Flags().GetBool("no-ampersand"); v {
		opts.AggressiveAmpersand = false
	}
	if v, _ := cmd.Flags().GetBool("phrases"); v {
		opts.PhraseAbbreviations = true
	}
	return opts
}

func runCompress(cmd *cobra.Command, args []string) error {
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
	redactor := newRedactor(cmd, cfg)
	results := make([]output.Result, len(inputs))
	for i, in := range inputs {
		compressed := kevinify.Compress(redactText(redactor, logger, in.Text), &opts)
		results[i] = output.Result{
			Source: in.Source,
			Mode:   "compress",
			Input:  in.Text,
			Output: compressed,
		}
		logSavings(logger, in.Source, savings.Measure(in.Text, compressed))
	}

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(cfg.Format)).
		WithColor(output.ParseColorMode(cfg.Color))
	if err := writer.WriteResults(results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func addRedactFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("redact", false, "replace API keys, tokens and passwords with placeholders first")
}

// newRedactor returns nil unless redaction is enabled by flag or config.
func newRedactor(cmd *cobra.Command, cfg *config.Config) *redact.Redactor {
	enabled := cfg.Redact.Enabled
	if v, _ := cmd.Flags().GetBool("redact"); v {
		enabled = true
	}
	if !enabled {
		return nil
	}
	return redact.New(cfg.Redact.Patterns)
}

func redactText(r *redact.Redactor, logger *slog.Logger, text string) string {
	if r == nil {
		return text
	}
	out, n := r.RedactAndCount(text)
	if n > 0 {
		logger.Info("redacted secrets", "count", n)
	}
	return out
}

func logSavings(logger *slog.Logger, source string, r savings.Report) {
	logger.Info("compressed input",
		"source", source,
		"chars", r.OriginalChars,
		"compressed_chars", r.CompressedChars,
		"tokens_saved", r.SavedTokens,
		"percent_saved", fmt.Sprintf("%.1f", r.PercentSaved))
}
