// Package summary shows the results of a finished practice run.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplay/internal/router"
	"github.com/abhisek/mathplay/internal/screen"
	"github.com/abhisek/mathplay/internal/session"
	"github.com/abhisek/mathplay/internal/topic"
	"github.com/abhisek/mathplay/internal/ui/layout"
	"github.com/abhisek/mathplay/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary session.Summary
	engine  topic.Engine
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary, engine topic.Engine) *SummaryScreen {
	return &SummaryScreen{summary: summary, engine: engine}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	title := "Session complete!"
	if sum.Questions > 0 && sum.Correct == sum.Questions {
		title = "Perfect round!"
	}
	b.WriteString(center(theme.Title, title))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary), s.engine.Info().Title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body, fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Questions, sum.Correct, sum.Accuracy*100)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Level")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	levelStyle := theme.Body
	level := s.engine.LevelLabel(sum.Level)
	if sum.Level != sum.StartLevel {
		level = fmt.Sprintf("%s > %s", s.engine.LevelLabel(sum.StartLevel), level)
		if sum.Level > sum.StartLevel {
			levelStyle = theme.Correct
		}
	}
	b.WriteString(center(levelStyle, level))
	b.WriteString("\n")
	if sum.PeakLevel > sum.Level {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			"Best level reached: "+s.engine.LevelLabel(sum.PeakLevel)))
		b.WriteString("\n")
	}
	return b.String()
}
