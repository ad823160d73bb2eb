// Package openai implements llm.Provider for the OpenAI chat completions API
// and compatible servers.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/bimmerbailey/kevinify/internal/llm"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when neither Config nor ChatOptions name a model.
const DefaultModel = "gpt-4o-mini"

// APIKeyEnv is consulted when Config.APIKey is empty.
const APIKeyEnv = "OPENAI_API_KEY"

// Config holds OpenAI-specific configuration.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, e.g. for a compatible proxy.
	BaseURL string
}

// Provider implements llm.Provider using go-openai.
type Provider struct {
	client *openai.Client
	config Config
	logger *slog.Logger
}

var _ llm.Provider = (*Provider)(nil)

// New creates a new OpenAI provider.
func New(cfg Config, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	cfg.APIKey = resolveAPIKey(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: set llm.openai.api_key or %s", llm.ErrMissingAPIKey, APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
		logger.Debug("created openai client with explicit base url", "base_url", cfg.BaseURL)
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logger,
	}, nil
}

func resolveAPIKey(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(APIKeyEnv)
}

func (p *Provider) request(messages []llm.Message, opts *llm.ChatOptions, stream bool) openai.ChatCompletionRequest {
	o := opts.WithDefaultModel(p.config.Model)

	msgs := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		msgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	return openai.ChatCompletionRequest{
		Model:       o.Model,
		Messages:    msgs,
		MaxTokens:   o.MaxTokens,
		Temperature: o.Temperature,
		Stream:      stream,
	}
}

// wrapError maps a client error onto the llm sentinels.
func wrapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", llm.ErrContextCanceled, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", llm.ErrModelNotFound, err)
	}
	return fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
}

// Chat sends messages and returns the first choice.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	if len(messages) == 0 {
		return nil, llm.ErrNoMessages
	}

	req := p.request(messages, opts, false)
	p.logger.Debug("sending chat request", "model", req.Model, "messages", len(messages))

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		p.logger.Error("chat request failed", "error", err, "model", req.Model)
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", llm.ErrInvalidResponse)
	}

	p.logger.Debug("chat request completed",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"total_tokens", resp.Usage.TotalTokens)

	return &llm.Response{
		Content:      resp.Choices[0].Message.Content,
		Model:        resp.Model,
		TokensPrompt: resp.Usage.PromptTokens,
		TokensTotal:  resp.Usage.TotalTokens,
	}, nil
}

// ChatStream streams content deltas of the first choice.
func (p *Provider) ChatStream(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (<-chan llm.StreamEvent, error) {
	if len(messages) == 0 {
		return nil, llm.ErrNoMessages
	}

	req := p.request(messages, opts, true)
	p.logger.Debug("starting chat stream", "model", req.Model, "messages", len(messages))

	stream, err := p.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		p.logger.Error("chat stream failed", "error", err, "model", req.Model)
		return nil, wrapError(err)
	}

	events := make(chan llm.StreamEvent, 10)

	go func() {
		defer close(events)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				events <- llm.StreamEvent{Done: true}
				p.logger.Debug("chat stream completed", "model", req.Model)
				return
			}
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					p.logger.Error("chat stream failed", "error", err, "model", req.Model)
				}
				events <- llm.StreamEvent{Error: wrapError(err), Done: true}
				return
			}

			if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
				continue
			}
			select {
			case events <- llm.StreamEvent{Content: resp.Choices[0].Delta.Content}:
			case <-ctx.Done():
				select {
				case events <- llm.StreamEvent{Error: wrapError(ctx.Err()), Done: true}:
				default:
				}
				return
			}
		}
	}()

	return events, nil
}

// Heartbeat lists models to confirm the endpoint and key are usable.
func (p *Provider) Heartbeat(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		p.logger.Error("openai heartbeat failed", "error", err)
		return fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
	}
	return nil
}

// ModelAvailable reports whether model appears in the model list.
func (p *Provider) ModelAvailable(ctx context.Context, model string) (bool, error) {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", llm.ErrProviderUnavailable, err)
	}

	for _, m := range list.Models {
		if m.ID == model {
			return true, nil
		}
	}

	p.logger.Debug("model not found", "model", model, "available_count", len(list.Models))
	return false, nil
}
