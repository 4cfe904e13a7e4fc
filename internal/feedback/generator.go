package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/toppers/mocktest/internal/flow"
	"github.com/toppers/mocktest/internal/llm"
)

// FlowName is the flow and ledger purpose label of feedback generation.
const FlowName = "motivational-feedback"

// Config controls the Generator.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.7,
	}
}

// Generator writes feedback with the model behind a provider.
type Generator struct {
	flow *flow.Flow[Request, Result]
	log  logrus.FieldLogger
}

// New creates a Generator. A nil log uses the logrus standard logger.
func New(provider llm.Provider, cfg Config, log logrus.FieldLogger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}

	prompt := &flow.Prompt[Request]{
		Name:        FlowName,
		System:      systemPrompt,
		User:        userTemplate,
		Input:       RequestSchema,
		Output:      ResultSchema,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	return &Generator{
		flow: flow.Define[Request, Result](FlowName, provider, prompt),
		log:  log.WithField("flow", FlowName),
	}
}

// Generate returns feedback for req. Blank feedback is *llm.ErrNoOutput.
// Feedback over MaxWords is returned as is and logged.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	out, err := g.flow.Run(ctx, req)
	if err != nil {
		// "" fails the schema's minLength but is missing output all the same.
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) && isBlankFeedback(invalid.Content) {
			return nil, &llm.ErrNoOutput{Purpose: FlowName}
		}
		return nil, err
	}

	if strings.TrimSpace(out.Feedback) == "" {
		return nil, &llm.ErrNoOutput{Purpose: FlowName}
	}

	if n := WordCount(out.Feedback); n > MaxWords {
		g.log.WithField("words", n).Warn("feedback longer than requested")
	}

	return &out, nil
}

func isBlankFeedback(raw json.RawMessage) bool {
	var r struct {
		Feedback *string `json:"feedback"`
	}
	if err := json.Unmarshal(raw, &r); err != nil || r.Feedback == nil {
		return false
	}
	return strings.TrimSpace(*r.Feedback) == ""
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
