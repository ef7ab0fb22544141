package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplay/internal/topic"
	"github.com/abhisek/mathplay/internal/ui/theme"
)

// ChoiceList is a multiple-choice selector. Options are numbered from 1 and
// can be picked with the number keys or with the arrows and Enter.
type ChoiceList struct {
	Options  []topic.Choice
	Selected int

	// Chosen is the option picked by the learner, -1 until then.
	Chosen int

	// Answer is the key or label of the correct option, set after resolution.
	Answer string
}

// NewChoiceList creates a selector over options.
func NewChoiceList(options []topic.Choice) ChoiceList {
	return ChoiceList{Options: options, Chosen: -1}
}

// Update handles navigation. It reports the picked key once a choice is made.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, string, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || c.Chosen >= 0 {
		return c, "", false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		return c.pick(c.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				return c.pick(i)
			}
		}
	}
	return c, "", false
}

func (c ChoiceList) pick(i int) (ChoiceList, string, bool) {
	if i < 0 || i >= len(c.Options) {
		return c, "", false
	}
	c.Selected = i
	c.Chosen = i
	return c, c.Options[i].Key, true
}

// Reveal marks the correct option, given by key or label, for the
// feedback view.
func (c *ChoiceList) Reveal(answer string) {
	c.Answer = answer
}

func (c ChoiceList) isAnswer(opt topic.Choice) bool {
	return c.Answer != "" && (opt.Key == c.Answer || opt.Label == c.Answer)
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && c.Answer == "" {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt.Label)

		var style lipgloss.Style
		switch {
		case c.isAnswer(opt):
			style = theme.Correct
		case c.Answer != "" && i == c.Chosen:
			style = theme.Incorrect
		case c.Answer != "":
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
