package llm

import (
	"context"
	"errors"
)

// Provider defines the interface for LLM interactions.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Chat sends messages and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error)

	// ChatStream sends messages and returns a channel of streaming events.
	// The channel is closed when the stream completes or fails.
	ChatStream(ctx context.Context, messages []Message, opts *ChatOptions) (<-chan StreamEvent, error)

	// Heartbeat returns nil if the provider is reachable.
	Heartbeat(ctx context.Context) error

	// ModelAvailable reports whether model can be used without pulling it.
	ModelAvailable(ctx context.Context, model string) (bool, error)
}

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string
	Content string
}

// ChatOptions configures chat behavior.
// All fields are optional; nil opts uses provider defaults.
type ChatOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int // 0 = provider default
}

// Response represents a complete LLM response.
type Response struct {
	Content      string
	Model        string
	TokensPrompt int
	TokensTotal  int
}

// StreamEvent represents a single event in a streaming response.
// When Error is non-nil the stream is finished.
type StreamEvent struct {
	Content string
	Done    bool
	Error   error
}

// Common errors returned by LLM providers.
var (
	// ErrProviderUnavailable indicates the LLM provider is not reachable
	ErrProviderUnavailable = errors.New("llm provider is not reachable")

	// ErrModelNotFound indicates the requested model is not available
	ErrModelNotFound = errors.New("requested model is not available")

	// ErrInvalidResponse indicates the provider returned an invalid response
	ErrInvalidResponse = errors.New("provider returned invalid response")

	// ErrContextCanceled indicates the operation was canceled via context
	ErrContextCanceled = errors.New("operation was canceled")

	// ErrMissingAPIKey indicates a hosted provider has no credentials
	ErrMissingAPIKey = errors.New("api key not configured")

	// ErrNoMessages is returned when a chat is started without messages
	ErrNoMessages = errors.New("messages cannot be empty")
)

// WithDefaultModel returns opts with an empty Model replaced by defaultModel. A nil
// opts yields only the default model.
func (opts *ChatOptions) WithDefaultModel(defaultModel string) ChatOptions {
	var o ChatOptions
	if opts != nil {
		o = *opts
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	return o
}
