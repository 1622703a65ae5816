/*
Package chain wires prompt templates to the completion service and decides,
per request, which single template answers it.
*/
package chain

import (
	"context"
	"errors"
	"fmt"

	"NutriGini/internal/completion"
	"NutriGini/internal/prompts"

	"github.com/rs/zerolog"
)

// ErrUnknownDestination is returned when a chain is requested for a name that is not registered.
var ErrUnknownDestination = errors.New("unknown destination")

// Chain turns input text into model output.
type Chain interface {
	Run(ctx context.Context, input string) (string, error)
}

// TemplateChain binds one prompt template to a completer.
type TemplateChain struct {
	spec      prompts.PromptSpec
	completer completion.Completer
}

// NewTemplateChain returns a chain for spec.
func NewTemplateChain(spec prompts.PromptSpec, c completion.Completer) *TemplateChain {
	return &TemplateChain{spec: spec, completer: c}
}

// Name returns the template name.
func (c *TemplateChain) Name() string {
	return c.spec.Name
}

// Run fills the template with input and returns the model's text unchanged.
func (c *TemplateChain) Run(ctx context.Context, input string) (string, error) {
	prompt := c.spec.Fill(input)
	zerolog.Ctx(ctx).Debug().Str("destination", c.spec.Name).Str("prompt", prompt).Msg("running destination chain")

	out, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s chain: %w", c.spec.Name, err)
	}
	return out, nil
}

// DefaultChain forwards input to the completer with no added instructions.
type DefaultChain struct {
	completer completion.Completer
}

// NewDefaultChain returns the fallback chain.
func NewDefaultChain(c completion.Completer) *DefaultChain {
	return &DefaultChain{completer: c}
}

// Run implements Chain.
func (c *DefaultChain) Run(ctx context.Context, input string) (string, error) {
	zerolog.Ctx(ctx).Debug().Str("prompt", input).Msg("running default chain")

	out, err := c.completer.Complete(ctx, input)
	if err != nil {
		return "", fmt.Errorf("default chain: %w", err)
	}
	return out, nil
}

// DestinationSet holds one TemplateChain per registered template.
type DestinationSet struct {
	chains map[string]*TemplateChain
}

// NewDestinationSet builds a chain for every spec in reg.
func NewDestinationSet(reg *prompts.Registry, c completion.Completer) *DestinationSet {
	specs := reg.List()
	set := &DestinationSet{chains: make(map[string]*TemplateChain, len(specs))}
	for _, s := range specs {
		set.chains[s.Name] = NewTemplateChain(s, c)
	}
	return set
}

// Has reports whether name is a registered destination.
func (s *DestinationSet) Has(name string) bool {
	_, ok := s.chains[name]
	return ok
}

// Invoke runs the named chain. name must be registered.
func (s *DestinationSet) Invoke(ctx context.Context, name, input string) (string, error) {
	c, ok := s.chains[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDestination, name)
	}
	return c.Run(ctx, input)
}
