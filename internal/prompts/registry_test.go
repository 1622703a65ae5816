package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Default() {
		assert.False(t, seen[s.Name], "duplicate name %q", s.Name)
		seen[s.Name] = true
	}
	assert.Len(t, seen, 10)
}

func TestDefault_EveryTemplateHasOneSlot(t *testing.T) {
	for _, s := range Default() {
		assert.Equal(t, 1, strings.Count(s.Template, Placeholder), s.Name)
		assert.NotEmpty(t, s.Description, s.Name)
	}
}

func TestRegistry_ListIsIdempotent(t *testing.T) {
	r := MustDefault()

	first := r.List()
	second := r.List()
	assert.Equal(t, first, second)

	// Mutating the returned slice must not leak into the registry.
	first[0].Name = "changed"
	assert.Equal(t, "Nutrient Breakdown", r.List()[0].Name)
}

func TestRegistry_KeepsInsertionOrder(t *testing.T) {
	r := MustDefault()
	names := make([]string, 0, r.Len())
	for _, s := range r.List() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"Nutrient Breakdown",
		"Recipe Suggestions",
		"Meal Plan",
		"Healthy Eating Tips",
		"Exercise and Nutrition",
		"Dietary Restrictions",
		"Weight Management",
		"Food Allergies Management",
		"Digestive Health",
		"Plant-based Diet",
	}, names)
}

func TestRegistry_LookupIsCaseSensitive(t *testing.T) {
	r := MustDefault()

	spec, ok := r.Lookup("Meal Plan")
	require.True(t, ok)
	assert.Equal(t, "Meal Plan", spec.Name)

	_, ok = r.Lookup("meal plan")
	assert.False(t, ok)
}

func TestNewRegistry_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		specs []PromptSpec
		want  error
	}{
		{
			name: "duplicate names",
			specs: []PromptSpec{
				{Name: "A", Template: "x {input}"},
				{Name: "A", Template: "y {input}"},
			},
			want: ErrDuplicateName,
		},
		{
			name:  "missing slot",
			specs: []PromptSpec{{Name: "A", Template: "no slot"}},
			want:  ErrInvalidTemplate,
		},
		{
			name:  "two slots",
			specs: []PromptSpec{{Name: "A", Template: "{input} and {input}"}},
			want:  ErrInvalidTemplate,
		},
		{
			name:  "blank name",
			specs: []PromptSpec{{Name: "  ", Template: "{input}"}},
			want:  ErrInvalidTemplate,
		},
		{
			name: "empty",
			want: ErrInvalidTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.specs...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPromptSpec_FillReplacesOnlyPlaceholder(t *testing.T) {
	spec := PromptSpec{Name: "T", Template: "before {input} after"}
	x := "oats, {braces} & \"quotes\"\nsecond line"

	assert.Equal(t, "before "+x+" after", spec.Fill(x))
}

func TestRouterPrompt_ListsCandidatesInOrder(t *testing.T) {
	specs := Default()
	prompt := RouterPrompt(specs, "what is in an apple?")

	last := -1
	for _, s := range specs {
		line := s.Name + ": " + s.Description
		idx := strings.Index(prompt, line)
		require.GreaterOrEqual(t, idx, 0, "missing candidate %q", s.Name)
		assert.Greater(t, idx, last)
		last = idx
	}

	assert.Contains(t, prompt, "```json")
	assert.Contains(t, prompt, `"next_inputs"`)
	assert.Contains(t, prompt, "<< INPUT >>\nwhat is in an apple?")
	assert.Contains(t, prompt, "nutrient breakdown of each meal")
}

func TestRouterPrompt_DecisionInputWording(t *testing.T) {
	prompt := RouterPrompt(Default(), "q")

	assert.True(t, strings.HasPrefix(prompt,
		"Given a decision input to a language model select the model prompt best suited for evaluating the\ndecision input. "))
	assert.Contains(t, prompt, "You may also revise the original input if you think that revising it will ultimately lead to a better response from the language model.")
	assert.NotContains(t, prompt, "raw text input")
}

func TestParse_YAML(t *testing.T) {
	doc := `
prompts:
  - name: Hydration
    description: Water intake advice.
    template: "You are a hydration coach. {input}"
  - name: Snacks
    description: Healthy snack ideas.
    template: |
      Suggest snacks for:
      {input}
`
	r, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	assert.Equal(t, "Hydration", r.List()[0].Name)
	assert.Equal(t, "Suggest snacks for:\nmore fruit\n", r.List()[1].Fill("more fruit"))
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("prompts:\n  - name: A\n    templat: \"{input}\"\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, r.Len())

	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompts:\n  - name: Only\n    description: d\n    template: \"{input}\"\n"), 0o600))

	r, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
