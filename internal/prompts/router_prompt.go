package prompts

import (
	"fmt"
	"strings"
)

// DefaultDestination is the name the router returns when no template fits.
const DefaultDestination = "DEFAULT"

const fence = "```"

const routerInstructions = `Given a decision input to a language model select the model prompt best suited for evaluating the
decision input. You will be given the names of the available prompts and a description of what the prompt is best suited for. You may also revise the original input if you think that revising it will ultimately lead to a better response from the language model.`

/*
routerRules is appended after the formatting block. The last reminder keeps the
nutrient breakdown request alive even when the router rewrites the input.
*/
const routerRules = `REMEMBER: "destination" MUST be one of the candidate prompt names specified below OR it can be "DEFAULT" if the input is not well suited for any of the candidate prompts.
REMEMBER: "next_inputs" can just be the original input if you don't think any modifications are needed.
REMEMBER: Also give me the nutrient breakdown of each meal, if applicable.`

// Destinations renders the candidate list, one "name: description" per line.
func Destinations(specs []PromptSpec) string {
	lines := make([]string, 0, len(specs))
	for _, s := range specs {
		lines = append(lines, fmt.Sprintf("%s: %s", s.Name, s.Description))
	}
	return strings.Join(lines, "\n")
}

// RouterPrompt builds the meta-prompt asking the model to pick a destination for input.
func RouterPrompt(specs []PromptSpec, input string) string {
	var b strings.Builder

	b.WriteString(routerInstructions)
	b.WriteString("\n\n<< FORMATTING >>\n")
	b.WriteString("Return a markdown code snippet with a JSON object formatted to look like:\n")
	b.WriteString(fence + "json\n")
	b.WriteString("{\n")
	b.WriteString(`    "destination": string \ name of the prompt to use or "DEFAULT"` + "\n")
	b.WriteString(`    "next_inputs": string \ a potentially modified version of the original input` + "\n")
	b.WriteString("}\n")
	b.WriteString(fence + "\n\n")
	b.WriteString(routerRules)
	b.WriteString("\n\n<< CANDIDATE PROMPTS >>\n")
	b.WriteString(Destinations(specs))
	b.WriteString("\n\n<< INPUT >>\n")
	b.WriteString(input)
	b.WriteString("\n\n<< OUTPUT (remember to include the " + fence + "json)>>")

	return b.String()
}
