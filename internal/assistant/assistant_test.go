package assistant

import (
	"context"
	"errors"
	"testing"

	"NutriGini/internal/chain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	inputs []string
	result chain.Result
	err    error
}

func (s *stubHandler) Handle(ctx context.Context, input string) (chain.Result, error) {
	s.inputs = append(s.inputs, input)
	if s.err != nil {
		return chain.Result{}, s.err
	}
	return s.result, nil
}

func TestAssistant_AskSendsEffectiveQuery(t *testing.T) {
	h := &stubHandler{result: chain.Result{Destination: "Meal Plan", Output: "# Plan\n\n*Monday*: lentils"}}
	a := New(h, nil)

	turn, err := a.Ask(context.Background(), SampleQuery)
	require.NoError(t, err)

	require.Len(t, h.inputs, 1)
	assert.Equal(t, ComposeQuery(SampleQuery), h.inputs[0])
	assert.Equal(t, "Meal Plan", turn.Destination)
	assert.Equal(t, "# Plan\n\n*Monday*: lentils", turn.Output)
	assert.Contains(t, string(turn.Rendered), "<em>Monday</em>")
	assert.Empty(t, turn.ExtraInstructions)
	assert.False(t, turn.Invalid)
}

func TestAssistant_ClarifySendsFollowUpQuery(t *testing.T) {
	h := &stubHandler{result: chain.Result{Destination: "Dietary Restrictions", Output: "ok"}}
	a := New(h, nil)

	turn, err := a.Clarify(context.Background(), SampleQuery, "I also avoid dairy")
	require.NoError(t, err)

	require.Len(t, h.inputs, 1)
	assert.Equal(t, ComposeFollowUp(SampleQuery, "I also avoid dairy"), h.inputs[0])
	assert.Equal(t, "I also avoid dairy", turn.ExtraInstructions)
	assert.Equal(t, SampleQuery, turn.BaseQuery)
}

func TestAssistant_FlagsInvalidPrompt(t *testing.T) {
	h := &stubHandler{result: chain.Result{Destination: "DEFAULT", Output: "INVALID PROMPT."}}

	turn, err := New(h, nil).Ask(context.Background(), "who won the football match?")
	require.NoError(t, err)
	assert.True(t, turn.Invalid)
}

func TestAssistant_RejectsBlankInput(t *testing.T) {
	h := &stubHandler{}
	a := New(h, nil)

	_, err := a.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = a.Clarify(context.Background(), SampleQuery, "")
	assert.ErrorIs(t, err, ErrEmptyClarification)

	assert.Empty(t, h.inputs)
}

func TestAssistant_PropagatesHandlerError(t *testing.T) {
	boom := errors.New("upstream down")
	_, err := New(&stubHandler{err: boom}, nil).Ask(context.Background(), "banana")
	assert.ErrorIs(t, err, boom)
}
