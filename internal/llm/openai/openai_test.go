package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bimmerbailey/kevinify/internal/llm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := New(Config{APIKey: "test-key", BaseURL: server.URL + "/v1"}, testLogger())
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	return provider
}

func TestNew(t *testing.T) {
	t.Run("explicit key", func(t *testing.T) {
		p, err := New(Config{APIKey: "sk-test"}, testLogger())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if p.config.Model != DefaultModel {
			t.Errorf("Model = %q, want %q", p.config.Model, DefaultModel)
		}
	})

	t.Run("key from environment", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "sk-env")
		p, err := New(Config{Model: "gpt-4o"}, testLogger())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if p.config.APIKey != "sk-env" || p.config.Model != "gpt-4o" {
			t.Errorf("config = %+v", p.config)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "")
		if _, err := New(Config{}, testLogger()); !errors.Is(err, llm.ErrMissingAPIKey) {
			t.Errorf("New() error = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("nil logger", func(t *testing.T) {
		if _, err := New(Config{APIKey: "sk-test"}, nil); err == nil {
			t.Error("New() should reject nil logger")
		}
	})
}

func TestChat(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Model != "gpt-4o" || req.MaxTokens != 50 {
			t.Errorf("request model=%q max_tokens=%d", req.Model, req.MaxTokens)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != llm.RoleSystem {
			t.Errorf("messages = %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
		}`)
	})

	resp, err := provider.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "be brief"},
		{Role: llm.RoleUser, Content: "pls send docs"},
	}, &llm.ChatOptions{Model: "gpt-4o", MaxTokens: 50})
	if err != nil {
		t.Fatalf("Chat() failed: %v", err)
	}
	if resp.Content != "ok" || resp.Model != "gpt-4o" {
		t.Errorf("Chat() = %+v", resp)
	}
	if resp.TokensPrompt != 12 || resp.TokensTotal != 15 {
		t.Errorf("tokens = %d/%d, want 12/15", resp.TokensPrompt, resp.TokensTotal)
	}
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "unknown model",
			status:  http.StatusNotFound,
			body:    `{"error": {"message": "model not found", "type": "invalid_request_error", "code": "model_not_found"}}`,
			wantErr: llm.ErrModelNotFound,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error": {"message": "boom", "type": "server_error"}}`,
			wantErr: llm.ErrProviderUnavailable,
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"id": "x", "model": "gpt-4o-mini", "choices": []}`,
			wantErr: llm.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := provider.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "x"}}, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Chat() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChatEmptyMessages(t *testing.T) {
	provider, err := New(Config{APIKey: "sk-test"}, testLogger())
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Chat(context.Background(), nil, nil); !errors.Is(err, llm.ErrNoMessages) {
		t.Errorf("Chat() error = %v, want ErrNoMessages", err)
	}
	if _, err := provider.ChatStream(context.Background(), nil, nil); !errors.Is(err, llm.ErrNoMessages) {
		t.Errorf("ChatStream() error = %v, want ErrNoMessages", err)
	}
}

func TestChatStream(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Hello ", "", "World", "!"} {
			fmt.Fprintf(w, "data: {\"id\":\"c\",\"object\":\"chat.completion.chunk\",\"model\":\"gpt-4o-mini\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", part)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	stream, err := provider.ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, nil)
	if err != nil {
		t.Fatalf("ChatStream() failed: %v", err)
	}

	var content strings.Builder
	var events, done int
	for event := range stream {
		if event.Error != nil {
			t.Fatalf("Stream error: %v", event.Error)
		}
		events++
		content.WriteString(event.Content)
		if event.Done {
			done++
		}
	}

	if content.String() != "Hello World!" {
		t.Errorf("content = %q, want %q", content.String(), "Hello World!")
	}
	if events != 4 || done != 1 {
		t.Errorf("events = %d, done = %d; want 4 and 1", events, done)
	}
}

func TestChatStreamRequestFails(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`)
	})

	_, err := provider.ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, nil)
	if !errors.Is(err, llm.ErrProviderUnavailable) {
		t.Errorf("ChatStream() error = %v, want ErrProviderUnavailable", err)
	}
}

func modelsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/models" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"object": "list", "data": [
		{"id": "gpt-4o-mini", "object": "model", "owned_by": "openai"},
		{"id": "gpt-4o", "object": "model", "owned_by": "openai"}
	]}`)
}

func TestHeartbeat(t *testing.T) {
	provider := newTestProvider(t, modelsHandler)
	if err := provider.Heartbeat(context.Background()); err != nil {
		t.Errorf("Heartbeat() error = %v", err)
	}

	down := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	if err := down.Heartbeat(context.Background()); !errors.Is(err, llm.ErrProviderUnavailable) {
		t.Errorf("Heartbeat() error = %v, want ErrProviderUnavailable", err)
	}
}

func TestModelAvailable(t *testing.T) {
	provider := newTestProvider(t, modelsHandler)

	tests := []struct {
		model     string
		available bool
	}{
		{"gpt-4o-mini", true},
		{"gpt-4o", true},
		{"gpt-5-imaginary", false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, err := provider.ModelAvailable(context.Background(), tt.model)
			if err != nil {
				t.Fatalf("ModelAvailable() error: %v", err)
			}
			if got != tt.available {
				t.Errorf("ModelAvailable(%q) = %v, want %v", tt.model, got, tt.available)
			}
		})
	}
}
