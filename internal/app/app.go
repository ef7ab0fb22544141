// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathplay/internal/arith"
	"github.com/abhisek/mathplay/internal/router"
	"github.com/abhisek/mathplay/internal/screen"
	"github.com/abhisek/mathplay/internal/screens/home"
	"github.com/abhisek/mathplay/internal/screens/play"
	"github.com/abhisek/mathplay/internal/session"
	"github.com/abhisek/mathplay/internal/stats"
	"github.com/abhisek/mathplay/internal/topic"
	"github.com/abhisek/mathplay/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Tracker *stats.Tracker
	Engines []topic.Engine

	// Start opens this topic directly instead of waiting on the menu.
	Start topic.Engine

	Timer  bool
	Seed   int64
	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	startup tea.Cmd
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen at the bottom of
// the stack.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// One source for the whole run so a seed reproduces every topic opened.
	src := arith.NewSource(opts.Seed)
	var sink session.Sink
	if opts.Tracker != nil {
		sink = opts.Tracker
	}
	open := func(e topic.Engine) screen.Screen {
		return play.New(e, sink, play.Options{
			Timer:  opts.Timer,
			Source: src,
			Logger: logger,
		})
	}

	var progress home.Progress
	if opts.Tracker != nil {
		progress = opts.Tracker
	}
	homeScreen := home.New(progress, opts.Engines, open, logger)

	m := AppModel{router: router.New(homeScreen)}
	cmds := []tea.Cmd{homeScreen.Init()}
	if opts.Start != nil {
		if opts.Tracker != nil {
			cmds = append(cmds, markStarted(opts.Tracker, opts.Start.Info().ID, logger))
		}
		cmds = append(cmds, m.router.Push(open(opts.Start)))
	}
	m.startup = tea.Batch(cmds...)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.startup
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, badge := "", ""
	if active != nil {
		title = active.Title()
	}
	if bp, ok := active.(screen.BadgeProvider); ok {
		badge = bp.Badge()
	}
	header := layout.RenderHeader(title, badge, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// footerHints puts the screen's own hints before the global ones.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, hp.KeyHints()...)
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func markStarted(t *stats.Tracker, id topic.ID, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if err := t.MarkStarted(context.Background(), id); err != nil {
			logger.Warn("mark topic started", "topic", id, "error", err)
		}
		return nil
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
