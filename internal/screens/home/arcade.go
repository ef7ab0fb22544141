package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplay/internal/stats"
	"github.com/abhisek/mathplay/internal/ui/components"
	"github.com/abhisek/mathplay/internal/ui/theme"
)

const arcadeTitleFull = `█▀▄▀█ ▄▀█ ▀█▀ █ █ █▀█ █   ▄▀█ █▄█
█ ▀ █ █▀█  █  █▀█ █▀▀ █▄▄ █▀█  █ `

const arcadeTitleCompact = "M · A · T · H · P · L · A · Y"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 34

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(art))
}

// badge describes one topic's progress for the stats bar.
type badge struct {
	Title   string
	Started bool
	Counts  stats.Counts
}

// renderStatsBar renders the selected topic's progress.
func renderStatsBar(b badge, cw int, compact bool) string {
	correctStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	startStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	c := b.Counts
	var line string
	switch {
	case !b.Started && c.Asked == 0:
		line = startStyle.Render("✦ NEW TOPIC") + dimStyle.Render("  press Enter to start")
	case compact:
		line = fmt.Sprintf("%s %s",
			correctStyle.Render(fmt.Sprintf("★%d/%d", c.Correct, c.Asked)),
			accStyle.Render(fmt.Sprintf("◆%.0f%%", c.Accuracy()*100)),
		)
	default:
		line = fmt.Sprintf("%s  %s  %s",
			correctStyle.Render(fmt.Sprintf("★ %d/%d CORRECT", c.Correct, c.Asked)),
			accStyle.Render(fmt.Sprintf("◆ %.0f%%", c.Accuracy()*100)),
			startStyle.Render("⚡ STARTED"),
		)
	}

	return components.StatsBox(line, cw)
}

// renderArcadeMenu renders each menu item as a fixed-width button, with its
// grade and duration underneath when details is set.
func renderArcadeMenu(items []components.MenuItem, selected int, cw int, details bool) string {
	buttons := make([]string, 0, len(items))
	for i, it := range items {
		if !details {
			it.Detail = ""
		}
		buttons = append(buttons, components.TopicButton(it, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	lines := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

func renderError(err error, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Progress could not be loaded: " + err.Error())
}
