package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bimmerbailey/kevinify/internal/config"
	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/bimmerbailey/kevinify/internal/llm/provider"
	"github.com/bimmerbailey/kevinify/internal/output"
	"github.com/bimmerbailey/kevinify/internal/prompt"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [text...]",
	Short: "Expand shorthand back into readable text",
	Long: `Expand rewrites known abbreviations back to their full words. It is
lossy: dropped filler words and stripped vowels cannot be recovered.

With --llm the configured model rewrites the text into fluent English
instead, using a glossary of the abbreviations it contains.

Examples:
  kevinify expand "pls send me docs"
  kevinify expand --first-wins "ur gr8"
  echo "ppl in dept need apprx 100 exmpls b4 prod" | kevinify expand --llm`,
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("no-preserve", false, "do not protect URLs, emails, mentions, hashtags and numbers")
	expandCmd.Flags().Bool("first-wins", false, "when two words share an abbreviation, expand to the first one")
	expandCmd.Flags().Bool("llm", false, "restore the text with the configured LLM")
	addFileFlag(expandCmd)

	rootCmd.AddCommand(expandCmd)
}

func expandOptions(cmd *cobra.Command, cfg *config.Config) kevinify.ExpandOptions {
	opts := cfg.ExpandOptions()

	if v, _ := cmd.Flags().GetBool("no-preserve"); v {
		opts.PreserveEntities = false
	}
	if v, _ := cmd.Flags().GetBool("first-wins"); v {
		opts.Collision = kevinify.FirstWriteWins
	}
	return opts
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	useLLM, _ := cmd.Flags().GetBool("llm")
	opts := expandOptions(cmd, cfg)

	results := make([]output.Result, len(inputs))
	for i, in := range inputs {
		results[i] = output.Result{Source: in.Source, Mode: "expand", Input: in.Text}
		if !useLLM {
			results[i].Output = kevinify.Expand(in.Text, &opts)
		}
	}

	if useLLM {
		if err := restoreWithLLM(commandContext(cmd), cmd, cfg, opts.Abbreviations, results); err != nil {
			return err
		}
	}

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(cfg.Format)).
		WithColor(output.ParseColorMode(cfg.Color))
	if err := writer.WriteResults(results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// restoreWithLLM fills in the Output of each result with the model's rewrite.
func restoreWithLLM(ctx context.Context, cmd *cobra.Command, cfg *config.Config, abbrs *kevinify.Abbreviations, results []output.Result) error {
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	p, err := connectProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}
	chatOpts := provider.ChatOptions(cfg)

	for i := range results {
		if strings.TrimSpace(results[i].Input) == "" {
			continue
		}
		messages, err := prompt.Build(prompt.TypeRestore, prompt.BuildOptions{
			Compressed:    results[i].Input,
			Abbreviations: abbrs,
		})
		if err != nil {
			return err
		}

		resp, err := p.Chat(ctx, messages, chatOpts)
		if err != nil {
			return fmt.Errorf("failed to restore text: %w", err)
		}
		results[i].Output = strings.TrimSpace(resp.Content)
		logger.Info("restored input", "source", results[i].Source, "model", resp.Model, "tokens", resp.TokensTotal)
	}
	return nil
}
