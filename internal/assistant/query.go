package assistant

// Fixed fragments appended to every submission.
const (
	// InputGuard asks the model to refuse anything outside nutrition and health.
	InputGuard = "\n\n NOTE: IF MY PROMPT IS NOT RELATED TO NUTRITION OR HEALTH, PLEASE SAY INVALID PROMPT."

	// NutrientFeature asks for a per-meal nutrient breakdown.
	NutrientFeature = "\n\n Also give me the nutrient breakdown of each meal"

	// FurtherPrefix introduces a follow-up clarification.
	FurtherPrefix = "FURTHER INSTRUCTIONS:, I would like to clarify that "

	// InvalidPromptReply is what the guard asks the model to answer for off-topic input.
	InvalidPromptReply = "INVALID PROMPT."
)

// SampleQuery pre-fills the primary input on the form.
const SampleQuery = "I want to increase my muscle mass, but I do not eat meat, what should be my meal plan for the week?"

// ComposeQuery builds the effective query for a first submission.
func ComposeQuery(base string) string {
	return base + InputGuard + NutrientFeature
}

// ComposeFollowUp builds the effective query for a clarification submission.
func ComposeFollowUp(base, clarification string) string {
	return base + FurtherPrefix + clarification + InputGuard + NutrientFeature
}
