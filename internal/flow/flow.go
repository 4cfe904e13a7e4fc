// Package flow runs named, schema-typed prompts against an llm.Provider.
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/toppers/mocktest/internal/llm"
)

// ErrInvalidInput means the flow input failed its input schema.
type ErrInvalidInput struct {
	Flow string
	Err  error
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("%s: invalid input: %v", e.Flow, e.Err)
}

func (e *ErrInvalidInput) Unwrap() error { return e.Err }

// Flow is a named model invocation from In to Out. It holds no mutable
// state and is safe for concurrent use.
type Flow[In, Out any] struct {
	name     string
	provider llm.Provider
	prompt   *Prompt[In]
}

// Define creates a flow. The name doubles as the purpose label in the
// request ledger.
func Define[In, Out any](name string, provider llm.Provider, prompt *Prompt[In]) *Flow[In, Out] {
	return &Flow[In, Out]{name: name, provider: provider, prompt: prompt}
}

func (f *Flow[In, Out]) Name() string {
	return f.name
}

// Run validates in, renders the prompt, calls the model and decodes the
// validated response into Out. Missing output is *llm.ErrNoOutput.
func (f *Flow[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	var out Out

	if err := f.ValidateInput(in); err != nil {
		return out, err
	}

	req, err := f.prompt.Render(in)
	if err != nil {
		return out, err
	}

	ctx = llm.WithPurpose(ctx, f.name)
	resp, err := f.provider.Generate(ctx, req)
	if err != nil {
		var empty *llm.ErrNoOutput
		if errors.As(err, &empty) {
			return out, &llm.ErrNoOutput{Purpose: f.name}
		}
		return out, fmt.Errorf("%s: %w", f.name, err)
	}

	if resp == nil || llm.IsEmptyContent(resp.Content) {
		return out, &llm.ErrNoOutput{Purpose: f.name}
	}

	if err := llm.ValidateJSON(f.prompt.Output, resp.Content); err != nil {
		return out, fmt.Errorf("%s: %w", f.name, err)
	}

	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return out, fmt.Errorf("%s: %w", f.name, &llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}
	return out, nil
}

// ValidateInput checks in against the prompt's input schema without calling
// the model.
func (f *Flow[In, Out]) ValidateInput(in In) error {
	if f.prompt.Input == nil {
		return nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return &ErrInvalidInput{Flow: f.name, Err: err}
	}
	if err := llm.ValidateJSON(f.prompt.Input, raw); err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			err = invalid.Err
		}
		return &ErrInvalidInput{Flow: f.name, Err: err}
	}
	return nil
}
