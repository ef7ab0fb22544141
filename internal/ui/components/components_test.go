package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/mathplay/internal/topic"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "a"},
		{Label: "skip", Disabled: true},
		{Label: "b"},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected, "stays on the last item")

	m, _ = m.Update(keyPress('k'))
	assert.Equal(t, 1, m.Selected)
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(specialKey(tea.KeyEnter))
	assert.True(t, ran)

	item, ok := m.Current()
	assert.True(t, ok)
	assert.Equal(t, "go", item.Label)
}

func TestMenu_View(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Average", Detail: "Grade 5"}, {Label: "Exit"}})
	v := ansi.Strip(m.View())
	assert.Contains(t, v, "▸ Average")
	assert.Contains(t, v, "Grade 5")
	assert.Contains(t, v, "Exit")
}

func testChoices() []topic.Choice {
	return []topic.Choice{
		{Key: "0-1", Label: "between 0 and 1"},
		{Key: "1-2", Label: "between 1 and 2"},
		{Key: "2-3", Label: "between 2 and 3"},
		{Key: "gt4", Label: "greater than 4"},
	}
}

func TestChoiceList_NumberKey(t *testing.T) {
	c := NewChoiceList(testChoices())
	c, key, ok := c.Update(keyPress('3'))
	assert.True(t, ok)
	assert.Equal(t, "2-3", key)
	assert.Equal(t, 2, c.Chosen)

	_, _, ok = c.Update(keyPress('1'))
	assert.False(t, ok, "a second pick is ignored")
}

func TestChoiceList_ArrowsAndEnter(t *testing.T) {
	c := NewChoiceList(testChoices())
	c, _, _ = c.Update(specialKey(tea.KeyDown))
	c, _, _ = c.Update(specialKey(tea.KeyDown))
	c, _, _ = c.Update(specialKey(tea.KeyUp))
	_, key, ok := c.Update(specialKey(tea.KeyEnter))
	assert.True(t, ok)
	assert.Equal(t, "1-2", key)
}

func TestChoiceList_OutOfRangeNumber(t *testing.T) {
	c := NewChoiceList(testChoices())
	_, _, ok := c.Update(keyPress('7'))
	assert.False(t, ok)
}

func TestChoiceList_Reveal(t *testing.T) {
	c := NewChoiceList(testChoices())
	c, _, _ = c.Update(keyPress('1'))
	c.Reveal("gt4")
	v := ansi.Strip(c.View())
	assert.Contains(t, v, "4)  greater than 4")
	assert.NotContains(t, v, "▸", "no cursor after reveal")

	byLabel := NewChoiceList(testChoices())
	byLabel.Reveal("between 1 and 2")
	assert.True(t, byLabel.isAnswer(byLabel.Options[1]))
	assert.False(t, byLabel.isAnswer(byLabel.Options[0]))
}

func TestTextInput_Filter(t *testing.T) {
	in := NewTextInput("answer", AnswerRunes, 10)
	for _, r := range "3a/4" {
		in, _ = in.Update(keyPress(r))
	}
	assert.Equal(t, "3/4", in.Value())

	in.Submit(true)
	in, _ = in.Update(keyPress('5'))
	assert.Equal(t, "3/4", in.Value(), "frozen after submit")
	assert.True(t, in.Submitted())
	assert.True(t, strings.HasSuffix(ansi.Strip(in.View()), "✓"))

	bad := NewTextInput("answer", AnswerRunes, 10)
	bad.Submit(false)
	assert.True(t, strings.HasSuffix(ansi.Strip(bad.View()), "✗"))
}

func TestAnswerRunes(t *testing.T) {
	for _, r := range "0123456789/-.," {
		assert.True(t, AnswerRunes(r), "%q", r)
	}
	for _, r := range "ax +" {
		assert.False(t, AnswerRunes(r), "%q", r)
	}
	assert.True(t, AnswerRunes('３'))
}

func TestProgressBar_Clamps(t *testing.T) {
	assert.Contains(t, NewProgressBar("", 1.5, true, 20).View(), "100%")
	assert.Contains(t, NewProgressBar("", -1, true, 20).View(), "0%")
	assert.Contains(t, NewProgressBar("Level", 0.5, true, 30).View(), "50%")
}

func TestTopicButton(t *testing.T) {
	item := MenuItem{Label: "AVERAGE", Detail: "Grade 5 · 5–10 min"}

	on := ansi.Strip(TopicButton(item, true, 34))
	assert.Contains(t, on, "▸ AVERAGE")
	assert.Contains(t, on, "Grade 5")

	off := ansi.Strip(TopicButton(MenuItem{Label: "EXIT GAME"}, false, 34))
	assert.NotContains(t, off, "▸")
	assert.Equal(t, 3, strings.Count(off, "\n")+1, "border, label, border")
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 54, ContentWidth(60))
	assert.Equal(t, 64, ContentWidth(200))
}
