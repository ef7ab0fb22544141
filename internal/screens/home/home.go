// Package home is the topic menu shown at startup.
package home

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathplay/internal/router"
	"github.com/abhisek/mathplay/internal/screen"
	"github.com/abhisek/mathplay/internal/stats"
	"github.com/abhisek/mathplay/internal/topic"
	"github.com/abhisek/mathplay/internal/ui/components"
	"github.com/abhisek/mathplay/internal/ui/layout"
)

// Progress is the slice of the stats tracker the menu needs.
type Progress interface {
	Load(ctx context.Context) (stats.Document, error)
	MarkStarted(ctx context.Context, id topic.ID) error
}

// Opener builds the play screen for a topic.
type Opener func(topic.Engine) screen.Screen

// progressLoadedMsg carries a freshly loaded progress document.
type progressLoadedMsg struct {
	Doc stats.Document
	Err error
}

// detailHeight is the content height needed for two-line topic buttons.
const detailHeight = 40

// HomeScreen lists the topics with their progress.
type HomeScreen struct {
	progress Progress
	engines  []topic.Engine
	open     Opener
	logger   *slog.Logger

	menu   components.Menu
	labels []string
	doc    stats.Document
	err    error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. progress may be nil, in which case no
// progress is shown or recorded.
func New(progress Progress, engines []topic.Engine, open Opener, logger *slog.Logger) *HomeScreen {
	if logger == nil {
		logger = slog.Default()
	}
	h := &HomeScreen{
		progress: progress,
		engines:  engines,
		open:     open,
		logger:   logger,
	}

	items := make([]components.MenuItem, 0, len(engines)+1)
	for _, e := range engines {
		info := e.Info()
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(info.Title),
			Detail: info.Grade + " · " + info.Duration,
			Action: func() tea.Cmd { return h.openTopic(e) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "EXIT GAME",
		Action: func() tea.Cmd { return tea.Quit },
	})

	h.menu = components.NewMenu(items)
	for _, it := range items {
		h.labels = append(h.labels, it.Label)
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadProgress()
}

// Resume reloads progress after a topic screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadProgress()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose topic"},
		{Key: "Enter", Description: "Play"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(progressLoadedMsg); ok {
		h.doc, h.err = msg.Doc, msg.Err
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// Two-line buttons plus the mascot need about 30 rows of content.
	compact := layout.IsCompactHeight(height) || width < 90
	cw := components.ContentWidth(width)

	sel := h.selectedBadge()

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(sel.Started, sel.Counts.Asked, sel.Counts.Correct), cw))
	}
	if h.err != nil {
		sections = append(sections, renderError(h.err, cw))
	} else if h.menu.Selected < len(h.engines) {
		sections = append(sections, renderStatsBar(sel, cw, compact))
	}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.labels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Items, h.menu.Selected, cw, height >= detailHeight))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

// selectedBadge returns the progress of the highlighted topic.
func (h *HomeScreen) selectedBadge() badge {
	if h.menu.Selected >= len(h.engines) {
		return badge{Title: "Exit", Started: true}
	}
	info := h.engines[h.menu.Selected].Info()
	b := badge{Title: info.Title}
	if rec, ok := h.doc.Lookup(info.ID); ok {
		b.Started = rec.Started()
		b.Counts = rec.Stats
	}
	return b
}

func (h *HomeScreen) loadProgress() tea.Cmd {
	if h.progress == nil {
		return nil
	}
	p := h.progress
	return func() tea.Msg {
		doc, err := p.Load(context.Background())
		return progressLoadedMsg{Doc: doc, Err: err}
	}
}

// openTopic records that the topic was opened and pushes its screen.
func (h *HomeScreen) openTopic(e topic.Engine) tea.Cmd {
	p, open, logger := h.progress, h.open, h.logger
	return func() tea.Msg {
		id := e.Info().ID
		if p != nil {
			if err := p.MarkStarted(context.Background(), id); err != nil {
				logger.Warn("mark topic started", "topic", id, "error", err)
			}
		}
		return router.PushScreenMsg{Screen: open(e)}
	}
}
