package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bimmerbailey/kevinify/internal/config"
	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/bimmerbailey/kevinify/internal/llm"
	"github.com/bimmerbailey/kevinify/internal/llm/provider"
	"github.com/bimmerbailey/kevinify/internal/output"
	"github.com/bimmerbailey/kevinify/internal/prompt"
	"github.com/bimmerbailey/kevinify/internal/savings"
	"github.com/spf13/cobra"
)

// ErrOverBudget is returned when the compressed prompt is larger than
// --budget allows.
var ErrOverBudget = errors.New("compressed prompt exceeds token budget")

var sendCmd = &cobra.Command{
	Use:   "send [text...]",
	Short: "Compress a prompt and send it to an LLM",
	Long: `Compress a prompt and stream the model's answer.

The model is told how the shorthand works and gets a glossary of the
abbreviations used, so it can answer in normal English. The provider is
chosen by llm.provider in the config file (ollama or openai).

Examples:
  kevinify send "Can you please explain the difference between a process and a thread?"
  kevinify send --file question.md --instruction "Answer in one paragraph."
  kevinify send --budget 200 --format json --file notes.txt
  kevinify send --type restore "ppl in dept need apprx 100 exmpls b4 prod"`,
	RunE: runSend,
}

func init() {
	addSendFlags(sendCmd)
	rootCmd.AddCommand(sendCmd)
}

func addSendFlags(cmd *cobra.Command) {
	addCompressFlags(cmd)
	addRedactFlag(cmd)
	addFileFlag(cmd)
	cmd.Flags().String("type", string(prompt.TypeAnswer), "what the model should do (answer, restore)")
	cmd.Flags().StringP("instruction", "i", "", "extra instruction sent uncompressed after the prompt")
	cmd.Flags().Int("budget", 0, "fail if the compressed prompt is estimated above this many tokens (0 = no limit)")
	cmd.Flags().StringP("model", "m", "", "model to use instead of the configured one")
}

// sendResult is the JSON form of a send.
type sendResult struct {
	Files      []string       `json:"files,omitempty"`
	Prompt     string         `json:"prompt"`
	Compressed string         `json:"compressed"`
	Answer     string         `json:"answer"`
	Provider   string         `json:"provider"`
	Model      string         `json:"model"`
	Savings    savings.Report `json:"savings"`
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	format := output.ParseFormat(cfg.Format)
	ctx := commandContext(cmd)

	typeStr, _ := cmd.Flags().GetString("type")
	pt, err := prompt.ParsePromptType(typeStr)
	if err != nil {
		return err
	}
	instruction, _ := cmd.Flags().GetString("instruction")
	budget, _ := cmd.Flags().GetInt("budget")
	model, _ := cmd.Flags().GetString("model")

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	texts := make([]string, len(inputs))
	for i, in := range inputs {
		texts[i] = strings.TrimSpace(in.Text)
	}
	original := strings.Join(texts, "\n\n")

	opts := compressOptions(cmd, cfg)
	compressed := kevinify.Compress(redactText(newRedactor(cmd, cfg), logger, original), &opts)
	report := savings.Measure(original, compressed)
	logSavings(logger, strings.Join(sources(inputs), ","), report)

	if !report.WithinBudget(budget) {
		return fmt.Errorf("%w: ~%d tokens, budget %d", ErrOverBudget, report.CompressedTokens, budget)
	}

	messages, err := prompt.Build(pt, prompt.BuildOptions{
		Compressed:    compressed,
		Abbreviations: opts.Abbreviations,
		Files:         sources(inputs),
		Instruction:   instruction,
	})
	if err != nil {
		return err
	}

	p, err := connectProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}

	chatOpts := provider.ChatOptions(cfg)
	chatOpts.Model = model
	if chatOpts.Model == "" {
		chatOpts.Model = provider.ModelName(cfg)
	}

	stream, err := p.ChatStream(ctx, messages, chatOpts)
	if err != nil {
		return fmt.Errorf("failed to start LLM stream: %w", err)
	}

	out := cmd.OutOrStdout()
	var answer strings.Builder
	for event := range stream {
		if event.Error != nil {
			if answer.Len() > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n\nError during streaming: %v\n", event.Error)
			}
			return event.Error
		}

		if event.Content != "" {
			if format == output.FormatText {
				fmt.Fprint(out, event.Content)
			}
			answer.WriteString(event.Content)
		}
	}

	if format == output.FormatJSON {
		writer := output.New(out, output.FormatJSON)
		if err := writer.WriteJSON(sendResult{
			Files:      sources(inputs),
			Prompt:     original,
			Compressed: compressed,
			Answer:     answer.String(),
			Provider:   cfg.LLM.Provider,
			Model:      chatOpts.Model,
			Savings:    report,
		}); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		return nil
	}

	if format == output.FormatText {
		fmt.Fprintln(out)
	} else {
		fmt.Fprintln(out, answer.String())
	}

	if cfg.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n=== Prompt Savings ===\n%s\n", report)
	}
	return nil
}

// connectProvider builds the configured provider and checks it is reachable.
func connectProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llm.Provider, error) {
	p, err := provider.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w\n\nTroubleshooting:\n- Ensure Ollama is running: ollama serve\n- Check llm settings in ~/.kevinify.yaml\n- For openai, set OPENAI_API_KEY", err)
	}

	if err := p.Heartbeat(ctx); err != nil {
		if cfg.LLM.Provider == "ollama" {
			host := cfg.LLM.Ollama.Host
			if host == "" {
				host = "the default host"
			}
			return nil, fmt.Errorf("cannot connect to Ollama at %s: %w\n\nStart Ollama with: ollama serve", host, err)
		}
		return nil, fmt.Errorf("LLM provider %s unavailable: %w", cfg.LLM.Provider, err)
	}
	return p, nil
}

// commandContext returns the command's context, or Background when the
// command is run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
