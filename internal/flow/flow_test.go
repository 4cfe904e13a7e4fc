package flow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toppers/mocktest/internal/llm"
)

type greetIn struct {
	Name  string `json:"name"`
	Times int    `json:"times"`
}

type greetOut struct {
	Greeting string `json:"greeting"`
}

func greetPrompt() *Prompt[greetIn] {
	return &Prompt[greetIn]{
		Name:   "greet",
		System: "You greet people.",
		User:   template.Must(template.New("greet").Parse("Greet {{.Name}} {{.Times}} times.")),
		Input: &llm.Schema{
			Name: "flow-test-greet-input",
			Definition: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":  map[string]any{"type": "string", "minLength": 1},
					"times": map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []string{"name", "times"},
			},
		},
		Output: &llm.Schema{
			Name: "flow-test-greet-output",
			Definition: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"greeting": map[string]any{"type": "string"},
				},
				"required": []string{"greeting"},
			},
		},
		MaxTokens:   64,
		Temperature: 0.2,
	}
}

func TestPromptRender(t *testing.T) {
	req, err := greetPrompt().Render(greetIn{Name: "Asha", Times: 2})
	require.NoError(t, err)

	assert.Equal(t, "You greet people.", req.System)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, "Greet Asha 2 times.", req.Messages[0].Content)
	assert.Equal(t, "flow-test-greet-output", req.Schema.Name)
	assert.Equal(t, 64, req.MaxTokens)
	assert.InDelta(t, 0.2, req.Temperature, 1e-9)
}

func TestPromptRender_TemplateError(t *testing.T) {
	p := greetPrompt()
	p.User = template.Must(template.New("bad").Parse("{{.Missing}}"))

	_, err := p.Render(greetIn{Name: "Asha"})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"greeting":"Hi Asha"}`)})
	f := Define[greetIn, greetOut]("greet", mock, greetPrompt())

	out, err := f.Run(context.Background(), greetIn{Name: "Asha", Times: 1})
	require.NoError(t, err)
	assert.Equal(t, "Hi Asha", out.Greeting)
	assert.Equal(t, "greet", f.Name())
	assert.Equal(t, 1, mock.CallCount())
}

func TestRun_TagsPurpose(t *testing.T) {
	var purpose string
	p := providerFunc(func(ctx context.Context, req llm.Request) (*llm.Response, error) {
		purpose = llm.PurposeFrom(ctx)
		return &llm.Response{Content: json.RawMessage(`{"greeting":"Hi"}`)}, nil
	})

	_, err := Define[greetIn, greetOut]("greet", p, greetPrompt()).Run(context.Background(), greetIn{Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "greet", purpose)
}

func TestRun_InvalidInput(t *testing.T) {
	mock := llm.NewMockProvider()
	f := Define[greetIn, greetOut]("greet", mock, greetPrompt())

	_, err := f.Run(context.Background(), greetIn{Name: "", Times: -1})

	var invalid *ErrInvalidInput
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "greet", invalid.Flow)
	assert.Equal(t, 0, mock.CallCount(), "model must not be called for invalid input")
}

func TestRun_NoOutput(t *testing.T) {
	for _, content := range []string{``, `null`, `   `} {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(content)})
		f := Define[greetIn, greetOut]("greet", mock, greetPrompt())

		_, err := f.Run(context.Background(), greetIn{Name: "A"})

		var empty *llm.ErrNoOutput
		require.ErrorAs(t, err, &empty, "content %q", content)
		assert.Equal(t, "greet", empty.Purpose)
	}
}

func TestRun_ProviderNoOutputGetsPurpose(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrNoOutput{}})
	f := Define[greetIn, greetOut]("greet", mock, greetPrompt())

	_, err := f.Run(context.Background(), greetIn{Name: "A"})

	var empty *llm.ErrNoOutput
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "greet: model returned no output", err.Error())
}

func TestRun_OutputSchemaMismatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"salutation":"Hi"}`)})
	f := Define[greetIn, greetOut]("greet", mock, greetPrompt())

	_, err := f.Run(context.Background(), greetIn{Name: "A"})

	var invalid *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
}

func TestRun_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	f := Define[greetIn, greetOut]("greet", mock, greetPrompt())

	_, err := f.Run(context.Background(), greetIn{Name: "A"})

	var rl *llm.ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Contains(t, err.Error(), "greet: ")
}

type providerFunc func(ctx context.Context, req llm.Request) (*llm.Response, error)

func (f providerFunc) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return f(ctx, req)
}

func (f providerFunc) ModelID() string { return "func" }
