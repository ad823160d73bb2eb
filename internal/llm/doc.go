// Package llm defines the provider-neutral types used to send compressed
// prompts to a language model.
//
// Implementations live in subpackages (ollama, openai) and are selected by
// provider.New from configuration:
//
//	p, err := provider.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	stream, err := p.ChatStream(ctx, []llm.Message{
//	    {Role: llm.RoleUser, Content: kevinify.Compress(prompt, nil)},
//	}, &llm.ChatOptions{Temperature: 0})
//	for event := range stream {
//	    if event.Error != nil {
//	        return event.Error
//	    }
//	    fmt.Print(event.Content)
//	}
//
// Errors wrap the sentinels below, so callers can test them with errors.Is:
//
//   - ErrProviderUnavailable: service is not reachable
//   - ErrContextCanceled: the context was canceled mid-request
//   - ErrMissingAPIKey: a hosted provider has no key
package llm
