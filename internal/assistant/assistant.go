/*
Package assistant is the conversational front of NutriGini. It turns what the
user typed into the effective query, hands it to the dispatcher and renders the
answer. Each call is independent; nothing is remembered between turns.
*/
package assistant

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"NutriGini/internal/chain"

	"github.com/rs/zerolog"
)

var (
	// ErrEmptyQuery is returned when the primary query is blank.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrEmptyClarification is returned when a follow-up carries no clarification.
	ErrEmptyClarification = errors.New("clarification must not be empty")
)

// Handler answers one effective query. *chain.Dispatcher satisfies it.
type Handler interface {
	Handle(ctx context.Context, input string) (chain.Result, error)
}

// Turn is one request/response cycle. It lives only as long as the request.
type Turn struct {
	BaseQuery         string        `json:"base_query"`
	ExtraInstructions string        `json:"extra_instructions,omitempty"`
	EffectiveQuery    string        `json:"-"`
	Destination       string        `json:"destination"`
	Output            string        `json:"output"`
	Rendered          template.HTML `json:"rendered_html"`
	Invalid           bool          `json:"invalid_prompt"`
	Elapsed           time.Duration `json:"-"`
}

// Assistant composes queries, dispatches them and renders the result.
type Assistant struct {
	handler  Handler
	renderer *Renderer
}

// New returns an Assistant over h.
func New(h Handler, r *Renderer) *Assistant {
	if r == nil {
		r = NewRenderer()
	}
	return &Assistant{handler: h, renderer: r}
}

// Ask answers a first submission.
func (a *Assistant) Ask(ctx context.Context, base string) (*Turn, error) {
	if strings.TrimSpace(base) == "" {
		return nil, ErrEmptyQuery
	}
	return a.run(ctx, &Turn{BaseQuery: base}, ComposeQuery(base))
}

// Clarify re-submits base together with a freeform clarification.
func (a *Assistant) Clarify(ctx context.Context, base, clarification string) (*Turn, error) {
	if strings.TrimSpace(base) == "" {
		return nil, ErrEmptyQuery
	}
	if strings.TrimSpace(clarification) == "" {
		return nil, ErrEmptyClarification
	}
	t := &Turn{BaseQuery: base, ExtraInstructions: clarification}
	return a.run(ctx, t, ComposeFollowUp(base, clarification))
}

func (a *Assistant) run(ctx context.Context, t *Turn, query string) (*Turn, error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	t.EffectiveQuery = query
	res, err := a.handler.Handle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to answer query: %w", err)
	}

	rendered, err := a.renderer.Render(res.Output)
	if err != nil {
		return nil, err
	}

	t.Destination = res.Destination
	t.Output = res.Output
	t.Rendered = rendered
	t.Invalid = strings.Contains(strings.ToUpper(res.Output), InvalidPromptReply)
	t.Elapsed = time.Since(start)

	logger.Info().
		Str("destination", t.Destination).
		Bool("follow_up", t.ExtraInstructions != "").
		Bool("invalid_prompt", t.Invalid).
		Dur("elapsed", t.Elapsed).
		Msg("query answered")

	return t, nil
}
