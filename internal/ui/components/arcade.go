package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplay/internal/ui/theme"
)

// ContentWidth is the inner width shared by every section inside the
// cabinet: the frame border and padding take 6 columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// CabinetFrame centers content inside a double-bordered box filling
// width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// StatsBox frames a one-line progress summary at content width.
func StatsBox(line string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// TopicButton renders a menu item as a bordered button. The item's Detail,
// if any, goes on a second dimmed line.
func TopicButton(item MenuItem, selected bool, width int) string {
	label, detail := item.Label, item.Detail
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	detailStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	switch {
	case item.Disabled:
		style = style.Foreground(theme.TextDim).BorderForeground(theme.Border)
	case selected:
		label = "▸ " + label
		style = style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow)
		detailStyle = lipgloss.NewStyle()
	default:
		style = style.Foreground(theme.Text).BorderForeground(theme.Border)
	}

	if detail != "" {
		label += "\n" + detailStyle.Render(detail)
	}
	return style.Render(label)
}
