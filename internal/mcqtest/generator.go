package mcqtest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/toppers/mocktest/internal/flow"
	"github.com/toppers/mocktest/internal/llm"
)

// FlowName is the flow and ledger purpose label of MCQ generation.
const FlowName = "mcq-test"

// Generator produces tests with the model behind provider.
type Generator struct {
	flow     *flow.Flow[Request, testOutput]
	provider llm.Provider
	config   Config
	log      logrus.FieldLogger
	now      func() time.Time
}

// New creates a Generator. A nil log uses the logrus standard logger.
func New(provider llm.Provider, cfg Config, log logrus.FieldLogger) *Generator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	prompt := &flow.Prompt[Request]{
		Name:        FlowName,
		System:      systemPrompt,
		User:        userTemplate,
		Input:       RequestSchema,
		Output:      TestSchema,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	return &Generator{
		flow:     flow.Define[Request, testOutput](FlowName, provider, prompt),
		provider: provider,
		config:   cfg,
		log:      log.WithField("flow", FlowName),
		now:      time.Now,
	}
}

// Generate asks the model for a test matching req. A request for zero
// questions returns an empty test without calling the model. Output that
// fails a retryable validator is regenerated up to Config.MaxAttempts times.
func (g *Generator) Generate(ctx context.Context, req Request) (*Test, error) {
	if err := g.flow.ValidateInput(req); err != nil {
		return nil, err
	}

	test := &Test{
		ID:          uuid.NewString(),
		Subject:     req.Subject,
		Chapter:     req.Chapter,
		Model:       g.provider.ModelID(),
		GeneratedAt: g.now().UTC(),
		Questions:   []Question{},
	}
	if req.Total() == 0 {
		return test, nil
	}

	var lastErr error
	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		out, err := g.flow.Run(ctx, req)
		if err != nil {
			return nil, err
		}

		verr := g.validate(out.Questions, req)
		if verr == nil {
			test.Questions = out.Questions
			return test, nil
		}
		lastErr = verr

		entry := g.log.WithFields(logrus.Fields{
			"attempt":   attempt,
			"validator": verr.Validator,
		})
		if !verr.Retryable || attempt == g.config.MaxAttempts {
			entry.Warn(verr.Message)
			return nil, verr
		}
		entry.Info("regenerating: " + verr.Message)
	}

	return nil, lastErr
}

func (g *Generator) validate(qs []Question, req Request) *ValidationError {
	for i := range qs {
		for _, v := range g.config.Validators {
			if verr := v.Validate(&qs[i], req); verr != nil {
				verr.Message = fmt.Sprintf("question %d: %s", i+1, verr.Message)
				return verr
			}
		}
	}
	for _, v := range g.config.TestValidators {
		if verr := v.ValidateTest(qs, req); verr != nil {
			return verr
		}
	}
	return nil
}
