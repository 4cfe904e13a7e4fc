package flow

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/toppers/mocktest/internal/llm"
)

// Prompt binds a system prompt and a user template to typed input and the
// schemas on either side of the model call.
type Prompt[In any] struct {
	Name   string
	System string

	// User is executed with the flow input as its data.
	User *template.Template

	// Input validates the JSON encoding of the input before rendering.
	// Nil skips input validation.
	Input *llm.Schema

	// Output constrains the model response.
	Output *llm.Schema

	MaxTokens   int
	Temperature float64
}

// Render executes the user template and assembles the model request.
func (p *Prompt[In]) Render(in In) (llm.Request, error) {
	var buf bytes.Buffer
	if err := p.User.Execute(&buf, in); err != nil {
		return llm.Request{}, fmt.Errorf("render %s prompt: %w", p.Name, err)
	}

	return llm.Request{
		System: p.System,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buf.String()},
		},
		Schema:      p.Output,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	}, nil
}
