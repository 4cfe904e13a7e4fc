package tui

import (
	"time"

	"github.com/toppers/mocktest/internal/feedback"
	"github.com/toppers/mocktest/internal/mcqtest"
)

// testReadyMsg carries the generated test or the generation error.
type testReadyMsg struct {
	test *mcqtest.Test
	err  error
}

type feedbackReadyMsg struct {
	result *feedback.Result
	err    error
}

// tickMsg drives the elapsed timer once a second.
type tickMsg time.Time
