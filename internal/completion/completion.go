/*
Package completion is the single I/O boundary of the assistant: it turns a
prompt string into generated text using an externally hosted language model.
Providers share one Completer contract so the chains above never know which
vendor answered.
*/
package completion

import (
	"context"
	"errors"
	"fmt"

	"NutriGini/internal/config"

	"github.com/rs/zerolog"
)

var (
	// ErrMissingAPIKey indicates the provider was constructed without a credential.
	ErrMissingAPIKey = errors.New("completion API key is required")

	// ErrTimeout indicates a completion call exceeded its deadline.
	ErrTimeout = errors.New("completion request timed out")

	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("no content found in completion response")
)

// Completer sends one prompt to a text-completion service and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt).
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// New builds the provider selected by cfg and wraps it with the per-call
// timeout and attempt policy.
func New(cfg config.LLMConfig, logger *zerolog.Logger) (Completer, error) {
	var (
		provider Completer
		err      error
	)

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		provider, err = NewOpenAIProvider(cfg)
	case config.ProviderGemini:
		provider, err = NewGeminiProvider(context.Background(), cfg)
	case config.ProviderAnthropic:
		provider, err = NewAnthropicProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", cfg.Provider, err)
	}

	return NewRetrying(provider, cfg.Provider, cfg.MaxAttempts, cfg.Timeout, logger), nil
}
