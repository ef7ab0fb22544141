package play

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathplay/internal/arith"
	"github.com/abhisek/mathplay/internal/router"
	"github.com/abhisek/mathplay/internal/screens/summary"
	"github.com/abhisek/mathplay/internal/session"
	"github.com/abhisek/mathplay/internal/stats"
	"github.com/abhisek/mathplay/internal/store"
	"github.com/abhisek/mathplay/internal/topic"
	"github.com/abhisek/mathplay/internal/topic/commonden"
	"github.com/abhisek/mathplay/internal/topic/numberline"
	"github.com/abhisek/mathplay/internal/topic/reducefrac"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlG() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl}
}

func testPlay(t *testing.T, engine topic.Engine, timer bool) (*PlayScreen, *stats.Tracker) {
	t.Helper()
	tracker := stats.New(store.NewMemory(), stats.DefaultKey)
	s := New(engine, tracker, Options{Timer: timer, Source: arith.NewSource(7)})
	s.Init()
	require.NotNil(t, s.current.Question)
	return s, tracker
}

// expected returns the canonical answer of the question on screen.
func expected(s *PlayScreen) string {
	return s.current.Question.Check(topic.GiveUp()).Expected
}

func TestPlayScreen_ServesFirstQuestion(t *testing.T) {
	s, tracker := testPlay(t, commonden.New(), false)

	assert.Equal(t, "Common Denominator", s.Title())
	assert.Equal(t, 1, s.current.Index)
	assert.Equal(t, session.PhaseQuestion, s.sess.Phase())
	assert.Contains(t, ansi.Strip(s.View(100, 30)), s.current.Question.Prompt())

	c, err := tracker.Stats(context.Background(), topic.CommonDenominator)
	require.NoError(t, err)
	assert.Equal(t, stats.Counts{Asked: 1}, c)
}

func TestPlayScreen_CorrectAnswer(t *testing.T) {
	s, _ := testPlay(t, reducefrac.New(), false)

	s.input.Model.SetValue(expected(s))
	s.Update(specialKey(tea.KeyEnter))

	require.NotNil(t, s.result)
	assert.True(t, s.result.Correct())
	assert.Equal(t, "✓ 1/1", s.Badge())
	assert.Equal(t, 1, s.sess.Level(), "one correct answer moves up a level")
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "Correct!")
}

func TestPlayScreen_EmptyEnterIsIgnored(t *testing.T) {
	s, _ := testPlay(t, reducefrac.New(), false)
	s.input.Model.SetValue("   ")
	s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, s.result)
	assert.Equal(t, session.PhaseQuestion, s.sess.Phase())
}

func TestPlayScreen_WrongAnswerThenNext(t *testing.T) {
	s, _ := testPlay(t, commonden.New(), false)

	s.input.Model.SetValue("1")
	s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, s.result)
	assert.False(t, s.result.Correct())
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "Not quite.")

	s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, s.result)
	assert.Equal(t, 2, s.current.Index)
	assert.Equal(t, "✓ 0/2", s.Badge())
}

func TestPlayScreen_GiveUp(t *testing.T) {
	s, _ := testPlay(t, reducefrac.New(), false)

	s.Update(ctrlG())
	require.NotNil(t, s.result)
	assert.Equal(t, topic.ReasonGiveUp, s.result.Reason)
	assert.False(t, s.result.Correct())
}

func TestPlayScreen_MultipleChoice(t *testing.T) {
	s, _ := testPlay(t, numberline.New(), false)
	require.True(t, s.multipleChoice())

	want := expected(s)
	idx := -1
	for i, c := range s.current.Question.Choices() {
		if c.Label == want {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0, "correct bucket is offered")

	s.Update(keyPress(rune('1' + idx)))
	require.NotNil(t, s.result)
	assert.True(t, s.result.Correct())
	assert.Len(t, s.KeyHints(), 2, "feedback hints")
}

func TestPlayScreen_DeadlineOnTick(t *testing.T) {
	s, _ := testPlay(t, commonden.New(), true)
	id := s.sess.ID()

	secs, ok := s.remaining()
	require.True(t, ok)
	assert.Equal(t, 60, secs)

	for i := 0; i < 60 && s.result == nil; i++ {
		_, cmd := s.Update(tickMsg{SessionID: id})
		assert.NotNil(t, cmd, "tick chain continues")
	}
	require.NotNil(t, s.result, "deadline resolved the question")
	assert.Equal(t, topic.ReasonTimeout, s.result.Reason)
	assert.True(t, strings.HasPrefix(s.result.Explanation.Headline, "Time's up!"))

	_, late := s.sess.Submit(context.Background(), expected(s))
	assert.False(t, late, "a late answer is ignored")
}

func TestPlayScreen_StaleTickIsDropped(t *testing.T) {
	s, _ := testPlay(t, commonden.New(), true)
	_, cmd := s.Update(tickMsg{SessionID: "another-session"})
	assert.Nil(t, cmd)
	assert.Nil(t, s.result)
}

func TestPlayScreen_NoTimer(t *testing.T) {
	s, _ := testPlay(t, commonden.New(), false)
	_, ok := s.remaining()
	assert.False(t, ok)
	assert.Nil(t, s.clock)
}

func TestPlayScreen_FinishShowsSummary(t *testing.T) {
	s, _ := testPlay(t, reducefrac.New(), false)
	s.Update(ctrlG())

	_, cmd := s.Update(keyPress('q'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected the summary to replace the play screen")
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	require.True(t, ok)
	assert.Equal(t, "Session Summary", sum.Title())
}

func TestPlayScreen_KeyHints(t *testing.T) {
	s, _ := testPlay(t, reducefrac.New(), false)
	assert.Len(t, s.KeyHints(), 2)

	mc, _ := testPlay(t, numberline.New(), false)
	assert.Len(t, mc.KeyHints(), 3)
}
