package tutor

import "github.com/abhisek/mathdrill/internal/llm"

// HelpSchema is the structured shape of a help explanation.
var HelpSchema = &llm.Schema{
	Name:        "math-help",
	Description: "A short explanation of how to solve one practice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"analysis": map[string]any{
				"type":        "string",
				"description": "What kind of question this is and what it asks (1-2 sentences)",
			},
			"thinking": map[string]any{
				"type":        "string",
				"description": "How to think about solving it, in simple words (2-3 sentences)",
			},
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete solution steps, one sentence each, with the calculation shown",
			},
		},
		"required":             []any{"analysis", "thinking", "steps"},
		"additionalProperties": false,
	},
}
