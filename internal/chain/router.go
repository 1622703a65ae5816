package chain

import (
	"context"
	"fmt"

	"NutriGini/internal/completion"
	"NutriGini/internal/prompts"

	"github.com/rs/zerolog"
)

// Router chooses a destination for an input.
type Router interface {
	Route(ctx context.Context, input string) (Decision, error)
}

// RouterFunc adapts a function to Router. Handy for deterministic routing in tests.
type RouterFunc func(ctx context.Context, input string) (Decision, error)

// Route calls f(ctx, input).
func (f RouterFunc) Route(ctx context.Context, input string) (Decision, error) {
	return f(ctx, input)
}

// LLMRouter asks the completion service to pick a destination.
type LLMRouter struct {
	completer  completion.Completer
	candidates []prompts.PromptSpec
}

// NewLLMRouter lists every template in reg, in registry order, as a candidate.
func NewLLMRouter(c completion.Completer, reg *prompts.Registry) *LLMRouter {
	return &LLMRouter{completer: c, candidates: reg.List()}
}

// Route makes one completion call and parses the reply.
// Completion failures and unparseable replies are returned as errors; the
// latter wrap ErrInvalidDecision.
func (r *LLMRouter) Route(ctx context.Context, input string) (Decision, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := r.completer.Complete(ctx, prompts.RouterPrompt(r.candidates, input))
	if err != nil {
		return Decision{}, fmt.Errorf("router: %w", err)
	}
	logger.Debug().Str("router_output", raw).Msg("router replied")

	d, err := ParseDecision(raw)
	if err != nil {
		return Decision{}, fmt.Errorf("router: %w", err)
	}
	return d, nil
}
