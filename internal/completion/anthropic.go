package completion

import (
	"context"
	"fmt"

	"NutriGini/internal/config"

	"github.com/liushuangls/go-anthropic/v2"
)

// AnthropicProvider generates text with the Anthropic Messages API.
type AnthropicProvider struct {
	client      *anthropic.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewAnthropicProvider creates a provider from cfg. BaseURL is optional.
func NewAnthropicProvider(cfg config.LLMConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	return &AnthropicProvider{
		client:      anthropic.NewClient(cfg.APIKey, opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete sends prompt as a single user message.
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	// Anthropic caps temperature at 1.0.
	temperature := p.temperature
	if temperature > 1 {
		temperature = 1
	}

	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(p.model),
		Messages:    []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
		MaxTokens:   p.maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	text := resp.GetFirstContentText()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
