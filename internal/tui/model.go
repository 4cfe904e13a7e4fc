// Package tui runs an interactive mock test in the terminal: generate,
// answer, review the score and read the feedback.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/toppers/mocktest/internal/feedback"
	"github.com/toppers/mocktest/internal/mcqtest"
	"github.com/toppers/mocktest/internal/scoring"
	"github.com/toppers/mocktest/internal/ui/components"
)

type phase int

const (
	phaseSetup phase = iota
	phaseGenerating
	phaseQuestion
	phaseSummary
	phaseFeedback
)

// TestGenerator produces MCQ tests.
type TestGenerator interface {
	Generate(ctx context.Context, req mcqtest.Request) (*mcqtest.Test, error)
}

// FeedbackGenerator produces motivational feedback.
type FeedbackGenerator interface {
	Generate(ctx context.Context, req feedback.Request) (*feedback.Result, error)
}

// Options configures New.
type Options struct {
	// Request seeds the setup form. When Subject and Chapter are both set
	// the form is skipped.
	Request mcqtest.Request

	// Test skips generation entirely.
	Test *mcqtest.Test

	Tests    TestGenerator
	Feedback FeedbackGenerator

	Context context.Context
	Now     func() time.Time
}

// Model is the root Bubble Tea model of a mock test.
type Model struct {
	opts   Options
	phase  phase
	width  int
	height int

	subject components.TextInput
	chapter components.TextInput

	test    *mcqtest.Test
	index   int
	choice  components.MultiChoice
	answers []scoring.Answer

	started time.Time
	elapsed time.Duration

	score    feedback.Request
	feedback string
	loading  bool
	err      error
}

func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Request.Total() == 0 && opts.Test == nil {
		opts.Request = mcqtest.NewRequest(opts.Request.Subject, opts.Request.Chapter)
	}

	m := Model{
		opts:    opts,
		subject: components.NewTextInput("Subject", "e.g. Physics", 64),
		chapter: components.NewTextInput("Chapter", "e.g. Optics", 96),
	}
	m.subject.SetValue(opts.Request.Subject)
	m.chapter.SetValue(opts.Request.Chapter)

	switch {
	case opts.Test != nil:
		m.startTest(opts.Test)
	case m.subject.Value() != "" && m.chapter.Value() != "":
		m.phase = phaseGenerating
		m.loading = true
	default:
		m.phase = phaseSetup
		m.subject.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	switch m.phase {
	case phaseSetup:
		return m.subject.Focus()
	case phaseGenerating:
		return m.generateTest()
	case phaseQuestion:
		return tick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case testReadyMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.startTest(msg.test)
		if m.phase == phaseSummary {
			return m, nil
		}
		return m, tick()

	case feedbackReadyMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.feedback = msg.result.Feedback
		return m, nil

	case tickMsg:
		if m.phase != phaseQuestion {
			return m, nil
		}
		m.elapsed = time.Time(msg).Sub(m.started)
		return m, tick()

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.phase == phaseSetup {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.phase {
	case phaseSetup:
		switch key {
		case "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			return m, m.toggleFocus()
		case "enter":
			return m.submitSetup()
		}
		return m.updateInputs(msg)

	case phaseGenerating:
		switch key {
		case "esc", "q":
			return m, tea.Quit
		case "r":
			if m.err != nil && !m.loading {
				m.err = nil
				m.loading = true
				return m, m.generateTest()
			}
		}

	case phaseQuestion:
		switch key {
		case "esc":
			return m, tea.Quit
		case "s":
			return m.answer(scoring.Skipped)
		}
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Submitted {
			return m.answer(scoring.Answer(m.choice.Chosen()))
		}
		return m, cmd

	case phaseSummary:
		switch key {
		case "esc", "q":
			return m, tea.Quit
		case "enter", "f":
			m.phase = phaseFeedback
			m.loading = true
			return m, m.generateFeedback()
		}

	case phaseFeedback:
		switch key {
		case "esc", "q", "enter":
			if !m.loading {
				return m, tea.Quit
			}
		case "r":
			if m.err != nil && !m.loading {
				m.err = nil
				m.loading = true
				return m, m.generateFeedback()
			}
		case "b":
			if !m.loading {
				m.phase = phaseSummary
			}
		}
	}

	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.chapter.Focused() {
		m.chapter, cmd = m.chapter.Update(msg)
	} else {
		m.subject, cmd = m.subject.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.chapter.Focused() {
		m.chapter.Blur()
		return m.subject.Focus()
	}
	m.subject.Blur()
	return m.chapter.Focus()
}

func (m Model) submitSetup() (tea.Model, tea.Cmd) {
	if m.subject.Value() == "" {
		m.err = fmt.Errorf("subject is required")
		m.chapter.Blur()
		return m, m.subject.Focus()
	}
	if m.chapter.Value() == "" {
		if !m.chapter.Focused() {
			m.subject.Blur()
			return m, m.chapter.Focus()
		}
		m.err = fmt.Errorf("chapter is required")
		return m, nil
	}

	m.err = nil
	m.opts.Request.Subject = m.subject.Value()
	m.opts.Request.Chapter = m.chapter.Value()
	m.phase = phaseGenerating
	m.loading = true
	return m, m.generateTest()
}

// startTest resets the answer sheet for test. A test with no questions goes
// straight to the summary.
func (m *Model) startTest(test *mcqtest.Test) {
	m.test = test
	m.index = 0
	m.answers = make([]scoring.Answer, 0, len(test.Questions))
	m.started = m.opts.Now()
	m.elapsed = 0

	if len(test.Questions) == 0 {
		m.finish()
		return
	}
	m.phase = phaseQuestion
	m.choice = components.NewMultiChoice(test.Questions[0].Question, test.Questions[0].Options)
}

func (m Model) answer(a scoring.Answer) (tea.Model, tea.Cmd) {
	m.answers = append(m.answers, a)
	m.index++

	if m.index >= len(m.test.Questions) {
		m.elapsed = m.opts.Now().Sub(m.started)
		m.finish()
		return m, nil
	}

	q := m.test.Questions[m.index]
	m.choice = components.NewMultiChoice(q.Question, q.Options)
	return m, nil
}

func (m *Model) finish() {
	m.phase = phaseSummary
	score, err := scoring.Score(m.test, m.answers, m.elapsed)
	if err != nil {
		m.err = err
		return
	}
	m.score = score
}

func (m Model) generateTest() tea.Cmd {
	gen, ctx, req := m.opts.Tests, m.opts.Context, m.opts.Request
	return func() tea.Msg {
		if gen == nil {
			return testReadyMsg{err: fmt.Errorf("no test generator configured")}
		}
		test, err := gen.Generate(ctx, req)
		return testReadyMsg{test: test, err: err}
	}
}

func (m Model) generateFeedback() tea.Cmd {
	gen, ctx, req := m.opts.Feedback, m.opts.Context, m.score
	return func() tea.Msg {
		if gen == nil {
			return feedbackReadyMsg{err: fmt.Errorf("no feedback generator configured")}
		}
		res, err := gen.Generate(ctx, req)
		return feedbackReadyMsg{result: res, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Answers returns the recorded answers, in question order.
func (m Model) Answers() []scoring.Answer {
	return m.answers
}

// Test returns the test being taken, or nil before generation.
func (m Model) Test() *mcqtest.Test {
	return m.test
}

// Score returns the performance summary once the test is finished.
func (m Model) Score() (feedback.Request, bool) {
	return m.score, m.phase == phaseSummary || m.phase == phaseFeedback
}

// Run starts the program and blocks until the student quits.
func Run(opts Options) (Model, error) {
	final, err := tea.NewProgram(New(opts)).Run()
	if err != nil {
		return Model{}, err
	}
	m, _ := final.(Model)
	return m, nil
}
