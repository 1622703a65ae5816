package chain

import (
	"context"
	"errors"

	"NutriGini/internal/completion"
	"NutriGini/internal/prompts"

	"github.com/rs/zerolog"
)

// Result describes which chain answered and with what.
type Result struct {
	// Destination is the template that ran, or prompts.DefaultDestination.
	Destination string `json:"destination"`

	// Input is the text the chosen chain received.
	Input string `json:"input"`

	// Output is the model's text, unmodified.
	Output string `json:"output"`

	// Fallback is set when the default chain ran because routing produced
	// no usable registered destination.
	Fallback bool `json:"fallback"`
}

// Dispatcher routes each input to exactly one chain.
type Dispatcher struct {
	router       Router
	destinations *DestinationSet
	fallback     Chain
}

// NewDispatcher composes the three collaborators.
func NewDispatcher(router Router, destinations *DestinationSet, fallback Chain) *Dispatcher {
	return &Dispatcher{router: router, destinations: destinations, fallback: fallback}
}

// Build wires the LLM router, one chain per template and the default chain
// over a single completer.
func Build(c completion.Completer, reg *prompts.Registry) *Dispatcher {
	return NewDispatcher(NewLLMRouter(c, reg), NewDestinationSet(reg, c), NewDefaultChain(c))
}

// Handle routes input and returns the chosen chain's output.
//
// An unparseable router reply falls back to the default chain with the
// original input. Completion failures, from routing or generation, fail the request.
func (d *Dispatcher) Handle(ctx context.Context, input string) (Result, error) {
	logger := zerolog.Ctx(ctx)

	decision, err := d.router.Route(ctx, input)
	if err != nil {
		if !errors.Is(err, ErrInvalidDecision) {
			return Result{}, err
		}
		logger.Warn().Err(err).Msg("router reply unusable, falling back to default chain")
		decision = Decision{Destination: prompts.DefaultDestination}
	}

	next := decision.InputOr(input)

	if !decision.IsDefault() && d.destinations.Has(decision.Destination) {
		logger.Info().Str("destination", decision.Destination).Msg("routing to destination chain")

		out, err := d.destinations.Invoke(ctx, decision.Destination, next)
		if err != nil {
			return Result{}, err
		}
		return Result{Destination: decision.Destination, Input: next, Output: out}, nil
	}

	if !decision.IsDefault() {
		logger.Warn().Str("destination", decision.Destination).Msg("router chose an unregistered destination, using default chain")
	} else {
		logger.Info().Msg("routing to default chain")
	}

	out, err := d.fallback.Run(ctx, next)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Destination: prompts.DefaultDestination,
		Input:       next,
		Output:      out,
		Fallback:    true,
	}, nil
}
