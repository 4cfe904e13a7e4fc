package mcqtest

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/toppers/mocktest/internal/flow"
	"github.com/toppers/mocktest/internal/llm"
)

func testResponse(t *testing.T, qs []Question) llm.MockResponse {
	t.Helper()
	data, err := json.Marshal(map[string]any{"questions": qs})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return llm.MockResponse{Content: data}
}

func opticsQuestions() []Question {
	mk := func(text, answer string, d Difficulty, opts ...string) Question {
		return Question{Question: text, Options: opts, CorrectAnswer: answer, Difficulty: d}
	}
	return []Question{
		mk("What is the SI unit of power of a lens?", "Dioptre", DifficultyEasy, "Dioptre", "Metre", "Watt", "Lux"),
		mk("Which mirror is used in car headlights?", "Concave", DifficultyEasy, "Plane", "Convex", "Concave", "Cylindrical"),
		mk("A lens has focal length 50 cm. What is its power?", "+2 D", DifficultyMedium, "+0.5 D", "+2 D", "-2 D", "+50 D"),
		mk("What is the refractive index of glass if light travels at 2e8 m/s in it?", "1.5", DifficultyMedium, "1.33", "1.5", "2.0", "0.67"),
		mk("An object is placed at 2F of a convex lens. Where is the image?", "At 2F", DifficultyHard, "At F", "Beyond 2F", "At 2F", "Between F and 2F"),
	}
}

func newTestGenerator(mock *llm.MockProvider) *Generator {
	logger, _ := test.NewNullLogger()
	return New(mock, DefaultConfig(), logger)
}

func TestGenerate_PhysicsOptics(t *testing.T) {
	mock := llm.NewMockProvider(testResponse(t, opticsQuestions()))
	g := newTestGenerator(mock)

	req := Request{Subject: "Physics", Chapter: "Optics", EasyCount: 2, MediumCount: 2, HardCount: 1}
	got, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(got.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(got.Questions))
	}
	counts := got.CountByDifficulty()
	if counts[DifficultyEasy] != 2 || counts[DifficultyMedium] != 2 || counts[DifficultyHard] != 1 {
		t.Fatalf("unexpected distribution: %v", counts)
	}
	for i, q := range got.Questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options", i+1, len(q.Options))
		}
		if !q.Difficulty.Valid() {
			t.Errorf("question %d has difficulty %q", i+1, q.Difficulty)
		}
	}
	if got.ID == "" || got.Subject != "Physics" || got.Chapter != "Optics" || got.Model != "mock" {
		t.Errorf("unexpected envelope: %+v", got)
	}
	if got.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}

	call := mock.LastCall()
	if call.Schema != TestSchema {
		t.Error("expected the mcq-test output schema")
	}
	if !strings.Contains(call.System, "expert teacher") {
		t.Errorf("unexpected system prompt: %q", call.System)
	}
	user := call.Messages[0].Content
	for _, want := range []string{`subject "Physics"`, `chapter "Optics"`, "- 2 easy questions", "- 2 medium questions", "- 1 hard questions", "capital of France"} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

func TestGenerate_ZeroCounts(t *testing.T) {
	mock := llm.NewMockProvider()
	g := newTestGenerator(mock)

	got, err := g.Generate(context.Background(), Request{Subject: "Physics", Chapter: "Optics"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got == nil || len(got.Questions) != 0 {
		t.Fatalf("expected an empty test, got %+v", got)
	}
	if got.Questions == nil {
		t.Error("expected a non-nil empty question list")
	}
	if mock.CallCount() != 0 {
		t.Fatalf("expected no model call, got %d", mock.CallCount())
	}
}

func TestGenerate_NoOutput(t *testing.T) {
	for _, content := range []string{``, `null`} {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(content)})
		g := newTestGenerator(mock)

		_, err := g.Generate(context.Background(), NewRequest("Physics", "Optics"))

		var empty *llm.ErrNoOutput
		if !errors.As(err, &empty) {
			t.Fatalf("%q: expected ErrNoOutput, got %v", content, err)
		}
		if empty.Purpose != FlowName {
			t.Errorf("purpose = %q", empty.Purpose)
		}
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	tests := []Request{
		{Subject: "", Chapter: "Optics", EasyCount: 1},
		{Subject: "Physics", Chapter: "Optics", EasyCount: -1, MediumCount: 1},
	}
	for _, req := range tests {
		mock := llm.NewMockProvider()
		_, err := newTestGenerator(mock).Generate(context.Background(), req)

		var invalid *flow.ErrInvalidInput
		if !errors.As(err, &invalid) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", req, err)
		}
		if mock.CallCount() != 0 {
			t.Fatalf("expected no model call, got %d", mock.CallCount())
		}
	}
}

func TestGenerate_RepairsAnswerKey(t *testing.T) {
	qs := opticsQuestions()
	qs[0].CorrectAnswer = "A"
	qs[2].CorrectAnswer = "B) +2 D"
	mock := llm.NewMockProvider(testResponse(t, qs))

	req := Request{Subject: "Physics", Chapter: "Optics", EasyCount: 2, MediumCount: 2, HardCount: 1}
	got, err := newTestGenerator(mock).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.Questions[0].CorrectAnswer != "Dioptre" {
		t.Errorf("question 1 answer = %q", got.Questions[0].CorrectAnswer)
	}
	if got.Questions[2].CorrectAnswer != "+2 D" {
		t.Errorf("question 3 answer = %q", got.Questions[2].CorrectAnswer)
	}
}

func TestGenerate_RegeneratesOnWrongDistribution(t *testing.T) {
	skewed := opticsQuestions()
	skewed[4].Difficulty = DifficultyMedium
	mock := llm.NewMockProvider(
		testResponse(t, skewed),
		testResponse(t, opticsQuestions()),
	)

	req := Request{Subject: "Physics", Chapter: "Optics", EasyCount: 2, MediumCount: 2, HardCount: 1}
	got, err := newTestGenerator(mock).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 model calls, got %d", mock.CallCount())
	}
	if got.CountByDifficulty()[DifficultyHard] != 1 {
		t.Fatal("expected the regenerated test")
	}
}

func TestGenerate_GivesUpAfterMaxAttempts(t *testing.T) {
	bad := opticsQuestions()
	bad[1].CorrectAnswer = "Periscope"

	mock := llm.NewMockProvider()
	for range 3 {
		mock.AddResponse(testResponse(t, bad))
	}

	req := Request{Subject: "Physics", Chapter: "Optics", EasyCount: 2, MediumCount: 2, HardCount: 1}
	_, err := newTestGenerator(mock).Generate(context.Background(), req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Validator != "answer-key" || !strings.HasPrefix(verr.Message, "question 2: ") {
		t.Errorf("unexpected error: %+v", verr)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 model calls, got %d", mock.CallCount())
	}
}

func TestGenerate_NonRetryableStops(t *testing.T) {
	mock := llm.NewMockProvider(testResponse(t, opticsQuestions()))

	cfg := DefaultConfig()
	cfg.TestValidators = append(cfg.TestValidators, rejectAll{})
	logger, _ := test.NewNullLogger()
	g := New(mock, cfg, logger)

	req := Request{Subject: "Physics", Chapter: "Optics", EasyCount: 2, MediumCount: 2, HardCount: 1}
	_, err := g.Generate(context.Background(), req)

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "reject-all" {
		t.Fatalf("expected reject-all error, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 model call, got %d", mock.CallCount())
	}
}

func TestGenerate_SchemaRejectsThreeOptions(t *testing.T) {
	qs := opticsQuestions()
	qs[0].Options = qs[0].Options[:3]
	mock := llm.NewMockProvider(testResponse(t, qs))

	req := Request{Subject: "Physics", Chapter: "Optics", EasyCount: 2, MediumCount: 2, HardCount: 1}
	_, err := newTestGenerator(mock).Generate(context.Background(), req)

	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}})

	_, err := newTestGenerator(mock).Generate(context.Background(), NewRequest("Physics", "Optics"))

	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

type rejectAll struct{}

func (rejectAll) Name() string { return "reject-all" }

func (rejectAll) ValidateTest([]Question, Request) *ValidationError {
	return &ValidationError{Validator: "reject-all", Message: "no", Retryable: false}
}
