package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/toppers/mocktest/internal/mcqtest"
	"github.com/toppers/mocktest/internal/scoring"
	"github.com/toppers/mocktest/internal/ui/components"
	"github.com/toppers/mocktest/internal/ui/layout"
	"github.com/toppers/mocktest/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.title(), m.status(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	v.SetContent(layout.RenderFrame(header, m.content(), footer, m.width, m.height))
	return v
}

func (m Model) title() string {
	if m.test != nil {
		return m.test.Subject + " · " + m.test.Chapter
	}
	return "Mock Test"
}

func (m Model) status() string {
	if m.phase == phaseQuestion {
		return "⏱ " + formatElapsed(m.elapsed)
	}
	return ""
}

func (m Model) keyHints() []layout.KeyHint {
	switch m.phase {
	case phaseSetup:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Switch field"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseGenerating:
		if m.err != nil {
			return []layout.KeyHint{{Key: "R", Description: "Retry"}, {Key: "Esc", Description: "Quit"}}
		}
		return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "S", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseSummary:
		return []layout.KeyHint{{Key: "Enter", Description: "Get feedback"}, {Key: "Q", Description: "Quit"}}
	case phaseFeedback:
		hints := []layout.KeyHint{{Key: "B", Description: "Back to summary"}, {Key: "Q", Description: "Quit"}}
		if m.err != nil {
			hints = append([]layout.KeyHint{{Key: "R", Description: "Retry"}}, hints...)
		}
		return hints
	}
	return nil
}

func (m Model) content() string {
	switch m.phase {
	case phaseSetup:
		return m.setupView()
	case phaseGenerating:
		return m.generatingView()
	case phaseQuestion:
		return m.questionView()
	case phaseSummary:
		return m.summaryView()
	case phaseFeedback:
		return m.feedbackView()
	}
	return ""
}

func (m Model) setupView() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("New mock test"))
	b.WriteString("\n\n")
	b.WriteString(m.subject.View())
	b.WriteString("\n")
	b.WriteString(m.chapter.View())
	b.WriteString("\n\n")
	r := m.opts.Request
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d easy · %d medium · %d hard", r.EasyCount, r.MediumCount, r.HardCount)))
	b.WriteString(m.errorLine())
	return b.String()
}

func (m Model) generatingView() string {
	r := m.opts.Request
	if m.err != nil {
		return theme.Body.Render(fmt.Sprintf("Could not generate %s · %s.", r.Subject, r.Chapter)) + m.errorLine()
	}
	return theme.Body.Render(fmt.Sprintf("Generating %d questions on %s · %s ...", r.Total(), r.Subject, r.Chapter))
}

func (m Model) questionView() string {
	q := m.test.Questions[m.index]

	var b strings.Builder
	b.WriteString(components.NewProgressBar(m.index, len(m.test.Questions), min(m.width-8, 60)).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d  ", m.index+1, len(m.test.Questions))))
	b.WriteString(theme.DifficultyBadge(string(q.Difficulty)).Render(string(q.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(m.choice.View())
	return b.String()
}

func (m Model) summaryView() string {
	if m.err != nil {
		return m.errorLine()
	}
	s := m.score

	var b strings.Builder
	b.WriteString(theme.Title.Render("Result"))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Score") + theme.Body.Render(fmt.Sprintf("%g/%d", s.Score, s.Total())) + "\n")
	b.WriteString(theme.Label.Render("Accuracy") + theme.Body.Render(fmt.Sprintf("%.2f%%", s.Accuracy)) + "\n")
	b.WriteString(theme.Label.Render("Answers") +
		theme.Correct.Render(fmt.Sprintf("%d correct", s.CorrectAnswers)) + "  " +
		theme.Incorrect.Render(fmt.Sprintf("%d wrong", s.WrongAnswers)) + "  " +
		theme.Skipped.Render(fmt.Sprintf("%d skipped", s.SkippedAnswers)) + "\n")
	b.WriteString(theme.Label.Render("Time") + theme.Body.Render(fmt.Sprintf("%.1f min", s.TimeTaken)) + "\n\n")

	totals := m.test.CountByDifficulty()
	correct := map[mcqtest.Difficulty]int{
		mcqtest.DifficultyEasy:   s.DifficultyPerformance.Easy,
		mcqtest.DifficultyMedium: s.DifficultyPerformance.Medium,
		mcqtest.DifficultyHard:   s.DifficultyPerformance.Hard,
	}
	for _, d := range mcqtest.Difficulties {
		b.WriteString(theme.DifficultyBadge(string(d)).Width(12).Render(string(d)))
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d/%d", correct[d], totals[d])))
		b.WriteString("\n")
	}

	if review := m.reviewView(); review != "" {
		b.WriteString("\n")
		b.WriteString(review)
	}
	return b.String()
}

// reviewView lists wrongly answered questions with the correct option.
func (m Model) reviewView() string {
	var lines []string
	for i, q := range m.test.Questions {
		if i >= len(m.answers) || scoring.Grade(q, m.answers[i]) != scoring.OutcomeWrong {
			continue
		}
		lines = append(lines,
			theme.Body.Render(fmt.Sprintf("%d. %s", i+1, q.Question)),
			"   "+theme.Incorrect.Render("✗ "+string(m.answers[i]))+"  "+theme.Correct.Render("✓ "+q.CorrectAnswer),
		)
	}
	if len(lines) == 0 {
		return ""
	}
	return theme.Subtitle.Render("Review") + "\n" + strings.Join(lines, "\n")
}

func (m Model) feedbackView() string {
	if m.loading {
		return theme.Body.Render("Writing your feedback ...")
	}
	if m.err != nil {
		return theme.Body.Render("Could not get feedback.") + m.errorLine()
	}
	width := max(min(m.width-8, 80), 20)
	return theme.Card.Width(width).Render(theme.Body.Render(m.feedback))
}

func (m Model) errorLine() string {
	if m.err == nil {
		return ""
	}
	return "\n\n" + theme.ErrorText.Render(m.err.Error())
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}
