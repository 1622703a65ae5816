package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeQuery_SampleQuery(t *testing.T) {
	got := ComposeQuery(SampleQuery)

	assert.Equal(t, SampleQuery+InputGuard+NutrientFeature, got)
	assert.Equal(t,
		"I want to increase my muscle mass, but I do not eat meat, what should be my meal plan for the week?"+
			"\n\n NOTE: IF MY PROMPT IS NOT RELATED TO NUTRITION OR HEALTH, PLEASE SAY INVALID PROMPT."+
			"\n\n Also give me the nutrient breakdown of each meal",
		got)
}

func TestComposeFollowUp(t *testing.T) {
	got := ComposeFollowUp(SampleQuery, "I am allergic to soy")

	assert.Equal(t,
		SampleQuery+"FURTHER INSTRUCTIONS:, I would like to clarify that "+"I am allergic to soy"+InputGuard+NutrientFeature,
		got)
}

func TestInputGuard_EndsWithInvalidPromptReply(t *testing.T) {
	assert.Equal(t, "\n\n NOTE: IF MY PROMPT IS NOT RELATED TO NUTRITION OR HEALTH, PLEASE SAY INVALID PROMPT.", InputGuard)
	assert.True(t, strings.HasSuffix(InputGuard, " "+InvalidPromptReply))
	assert.NotContains(t, InputGuard, "'")
}
