// Package provider builds the configured llm.Provider.
package provider

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bimmerbailey/kevinify/internal/config"
	"github.com/bimmerbailey/kevinify/internal/llm"
	"github.com/bimmerbailey/kevinify/internal/llm/ollama"
	"github.com/bimmerbailey/kevinify/internal/llm/openai"
)

// New creates the provider named by cfg.LLM.Provider.
func New(cfg *config.Config, logger *slog.Logger) (llm.Provider, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	switch cfg.LLM.Provider {
	case "ollama":
		return ollama.New(ollama.Config{
			Host:  cfg.LLM.Ollama.Host,
			Model: cfg.LLM.Ollama.Model,
		}, logger)
	case "openai":
		return openai.New(openai.Config{
			APIKey:  cfg.LLM.OpenAI.APIKey,
			Model:   cfg.LLM.OpenAI.Model,
			BaseURL: cfg.LLM.OpenAI.BaseURL,
		}, logger)
	case "":
		return nil, errors.New("llm provider not specified (set llm.provider to ollama or openai)")
	default:
		return nil, fmt.Errorf("unknown llm provider %q (supported: ollama, openai)", cfg.LLM.Provider)
	}
}

// ChatOptions returns the request settings shared by every provider.
func ChatOptions(cfg *config.Config) *llm.ChatOptions {
	return &llm.ChatOptions{
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
}

// ModelName reports the model the configured provider will use.
func ModelName(cfg *config.Config) string {
	switch cfg.LLM.Provider {
	case "ollama":
		if cfg.LLM.Ollama.Model != "" {
			return cfg.LLM.Ollama.Model
		}
		return ollama.DefaultModel
	case "openai":
		if cfg.LLM.OpenAI.Model != "" {
			return cfg.LLM.OpenAI.Model
		}
		return openai.DefaultModel
	}
	return ""
}
