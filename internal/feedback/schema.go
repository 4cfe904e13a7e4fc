package feedback

import "github.com/toppers/mocktest/internal/llm"

var count = map[string]any{"type": "integer", "minimum": 0}

// RequestSchema validates generator input.
var RequestSchema = &llm.Schema{
	Name:        "feedback-request",
	Description: "Numeric performance summary of a taken mock test",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":          map[string]any{"type": "number"},
			"accuracy":       map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"correctAnswers": count,
			"wrongAnswers":   count,
			"skippedAnswers": count,
			"timeTaken":      map[string]any{"type": "number", "minimum": 0},
			"totalQuestions": count,
			"difficultyPerformance": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"easy":   count,
					"medium": count,
					"hard":   count,
				},
				"required": []any{"easy", "medium", "hard"},
			},
		},
		"required": []any{
			"score", "accuracy", "correctAnswers", "wrongAnswers",
			"skippedAnswers", "timeTaken", "difficultyPerformance",
		},
	},
}

// ResultSchema constrains the model output.
var ResultSchema = &llm.Schema{
	Name:        "motivational-feedback",
	Description: "Motivational feedback for a student",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "AI-generated motivational feedback for the student.",
			},
		},
		"required":             []any{"feedback"},
		"additionalProperties": false,
	},
}
