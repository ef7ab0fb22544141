package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplay/internal/topic"
	"github.com/abhisek/mathplay/internal/ui/components"
	"github.com/abhisek/mathplay/internal/ui/layout"
	"github.com/abhisek/mathplay/internal/ui/theme"
)

// lowTime is when the countdown turns orange.
const lowTime = 10

func (s *PlayScreen) View(width, height int) string {
	if s.current.Question == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Preparing your question...")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(s.current.Question.Prompt()))
	b.WriteString("\n\n")

	if s.multipleChoice() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View()))
	}

	if s.result != nil {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

// renderInfoLine shows the question index and level on the left and the
// countdown on the right, with the level progress bar in between.
func (s *PlayScreen) renderInfoLine(width int) string {
	cur := s.current
	level, label, progress := cur.Level, cur.LevelLabel, cur.Progress
	if s.result != nil {
		level, label, progress = s.result.Level, s.result.LevelLabel, s.result.Progress
	}

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Q%d  Level %d: %s", cur.Index, level, label))

	right := ""
	if secs, ok := s.remaining(); ok {
		fg := theme.TextDim
		if secs <= lowTime {
			fg = theme.Accent
		}
		right = lipgloss.NewStyle().Foreground(fg).Render("⏱ " + layout.Clock(secs))
	}

	barWidth := width - lipgloss.Width(left) - lipgloss.Width(right) - 8
	if barWidth < 10 {
		return left + "  " + right
	}
	bar := components.NewProgressBar("", progress, false, barWidth).View()
	return left + "  " + bar + "  " + right
}

// renderFeedback renders the verdict, the summary lines and the steps.
func (s *PlayScreen) renderFeedback(width int) string {
	r := s.result
	exp := r.Explanation

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Inherit(theme.Verdict(r.Correct())).
		Render(exp.Headline))
	b.WriteString("\n")

	if move := levelMove(r.PreviousLevel, r.Level); move != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(move))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	body := renderStatements(exp.Summary)
	if len(exp.Steps) > 0 {
		body += "\n" + renderStatements(exp.Steps)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Body.Width(min(width-8, 70)).Render(strings.TrimRight(body, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter for the next question, Q to finish."))
	return b.String()
}

func renderStatements(lines []topic.Statement) string {
	var b strings.Builder
	for _, st := range lines {
		b.WriteString(st.Render(theme.Emphasize))
		b.WriteString("\n")
	}
	return b.String()
}

func levelMove(prev, next int) string {
	switch {
	case next > prev:
		return "Level up!"
	case next < prev:
		return "Level down, let's practice a bit more."
	}
	return ""
}
