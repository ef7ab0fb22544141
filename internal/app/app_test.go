package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathplay/internal/catalog"
	"github.com/abhisek/mathplay/internal/router"
	"github.com/abhisek/mathplay/internal/stats"
	"github.com/abhisek/mathplay/internal/store"
	"github.com/abhisek/mathplay/internal/topic/average"
)

func testOptions() Options {
	return Options{
		Tracker: stats.New(store.NewMemory(), stats.DefaultKey),
		Engines: catalog.All(),
		Seed:    3,
	}
}

func sized(t *testing.T, m AppModel, w, h int) AppModel {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func TestAppModel_StartsAtHome(t *testing.T) {
	m := sized(t, newAppModel(testOptions()), 100, 30)
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Home", m.router.Active().Title())
	assert.NotNil(t, m.Init())
	assert.True(t, m.View().AltScreen)

	content := ansi.Strip(m.render())
	assert.Contains(t, content, "Mathplay")
	assert.Contains(t, content, "Ctrl+C")
}

func TestAppModel_StartTopic(t *testing.T) {
	opts := testOptions()
	opts.Start = average.New()
	m := sized(t, newAppModel(opts), 100, 30)

	require.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "Average", m.router.Active().Title())

	content := ansi.Strip(m.render())
	assert.Contains(t, content, "✓ 0/1", "header badge from the play screen")
	assert.Contains(t, content, "Esc")
}

func TestAppModel_EscPopsToHome(t *testing.T) {
	opts := testOptions()
	opts.Start = average.New()
	m := newAppModel(opts)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, router.PopScreenMsg{}, msg)

	updated, _ := m.Update(msg)
	assert.Equal(t, 1, updated.(AppModel).router.Depth())
}

func TestAppModel_EscAtHomeIsNoop(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_TooSmall(t *testing.T) {
	m := sized(t, newAppModel(testOptions()), 60, 20)
	assert.True(t, strings.Contains(ansi.Strip(m.render()), "Terminal too small"))
}

func TestAppModel_NilTracker(t *testing.T) {
	opts := testOptions()
	opts.Tracker = nil
	opts.Start = average.New()
	m := sized(t, newAppModel(opts), 100, 30)
	assert.Contains(t, ansi.Strip(m.render()), "Average")
}
