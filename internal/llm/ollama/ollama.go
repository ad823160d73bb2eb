// Package ollama implements llm.Provider on top of a local Ollama server.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bimmerbailey/kevinify/internal/llm"
	"github.com/ollama/ollama/api"
)

// DefaultModel is used when neither Config nor ChatOptions name a model.
const DefaultModel = "llama3.2"

// Config holds Ollama-specific configuration.
type Config struct {
	// Host is the API endpoint. Empty means OLLAMA_HOST or the default
	// http://localhost:11434.
	Host  string
	Model string
}

// Provider implements llm.Provider for Ollama.
type Provider struct {
	client *api.Client
	config Config
	logger *slog.Logger
}

var _ llm.Provider = (*Provider)(nil)

// New creates a new Ollama provider.
func New(cfg Config, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	var client *api.Client
	if cfg.Host != "" {
		parsedURL, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host: %w", err)
		}
		client = api.NewClient(parsedURL, http.DefaultClient)
		logger.Debug("created ollama client with explicit host", "host", cfg.Host)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
		}
		logger.Debug("created ollama client from environment")
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return &Provider{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

func (p *Provider) request(messages []llm.Message, opts *llm.ChatOptions, stream bool) *api.ChatRequest {
	o := opts.WithDefaultModel(p.config.Model)

	msgs := make([]api.Message, len(messages))
	for i, m := range messages {
		msgs[i] = api.Message{Role: m.Role, Content: m.Content}
	}

	req := &api.ChatRequest{
		Model:    o.Model,
		Messages: msgs,
		Options: map[string]interface{}{
			"temperature": o.Temperature,
		},
		Stream: &stream,
	}
	if o.MaxTokens > 0 {
		req.Options["num_predict"] = o.MaxTokens
	}
	return req
}

// wrapError maps a client error onto the llm sentinels.
func wrapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", llm.ErrContextCanceled, err)
	}
	return fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
}

// Chat sends messages to Ollama and returns a complete response.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	if len(messages) == 0 {
		return nil, llm.ErrNoMessages
	}

	req := p.request(messages, opts, false)
	p.logger.Debug("sending chat request", "model", req.Model, "messages", len(messages))

	var response api.ChatResponse
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response = resp
		return nil
	})
	if err != nil {
		p.logger.Error("chat request failed", "error", err, "model", req.Model)
		return nil, wrapError(err)
	}

	p.logger.Debug("chat request completed",
		"model", response.Model,
		"prompt_tokens", response.PromptEvalCount,
		"eval_tokens", response.EvalCount)

	return &llm.Response{
		Content:      response.Message.Content,
		Model:        response.Model,
		TokensPrompt: response.PromptEvalCount,
		TokensTotal:  response.PromptEvalCount + response.EvalCount,
	}, nil
}

// ChatStream sends messages to Ollama and streams the reply.
func (p *Provider) ChatStream(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (<-chan llm.StreamEvent, error) {
	if len(messages) == 0 {
		return nil, llm.ErrNoMessages
	}

	req := p.request(messages, opts, true)
	p.logger.Debug("starting chat stream", "model", req.Model, "messages", len(messages))

	events := make(chan llm.StreamEvent, 10)

	go func() {
		defer close(events)

		err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if resp.Message.Content != "" || resp.Done {
				select {
				case events <- llm.StreamEvent{Content: resp.Message.Content, Done: resp.Done}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if resp.Done {
				p.logger.Debug("chat stream completed",
					"model", resp.Model,
					"prompt_tokens", resp.PromptEvalCount,
					"eval_tokens", resp.EvalCount)
			}
			return nil
		})
		if err == nil {
			return
		}

		if !errors.Is(err, context.Canceled) {
			p.logger.Error("chat stream failed", "error", err, "model", req.Model)
		}
		events <- llm.StreamEvent{Error: wrapError(err), Done: true}
	}()

	return events, nil
}

// Heartbeat checks if the Ollama service is reachable.
func (p *Provider) Heartbeat(ctx context.Context) error {
	if err := p.client.Heartbeat(ctx); err != nil {
		p.logger.Error("ollama heartbeat failed", "error", err)
		return fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
	}
	return nil
}

// ModelAvailable checks if model has been pulled.
func (p *Provider) ModelAvailable(ctx context.Context, model string) (bool, error) {
	listResp, err := p.client.List(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
	}

	for _, m := range listResp.Models {
		if m.Name == model || m.Model == model {
			return true, nil
		}
	}

	p.logger.Debug("model not found", "model", model, "available_count", len(listResp.Models))
	return false, nil
}
