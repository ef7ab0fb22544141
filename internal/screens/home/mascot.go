package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplay/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: the topic is going well
	MascotAlert                            // Orange, exclamation: a topic not tried yet
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ½ ¾ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ½ ¾ │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ½ ¾ │
└─────┘`

// celebrateAfter is the number of questions before accuracy counts.
const celebrateAfter = 5

// mascotFor picks the mascot for a topic's progress.
func mascotFor(started bool, asked, correct int) MascotVariant {
	switch {
	case !started:
		return MascotAlert
	case asked >= celebrateAfter && correct*5 >= asked*4:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
