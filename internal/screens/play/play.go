// Package play is the question screen for one topic.
package play

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathplay/internal/arith"
	"github.com/abhisek/mathplay/internal/router"
	"github.com/abhisek/mathplay/internal/screen"
	"github.com/abhisek/mathplay/internal/screens/summary"
	"github.com/abhisek/mathplay/internal/session"
	"github.com/abhisek/mathplay/internal/topic"
	"github.com/abhisek/mathplay/internal/ui/components"
	"github.com/abhisek/mathplay/internal/ui/layout"
)

// Options configures a play screen.
type Options struct {
	// Timer enables per-question deadlines.
	Timer bool

	// Source is the question randomness. Nil picks a random seed.
	Source arith.Source

	Logger *slog.Logger
}

// PlayScreen implements screen.Screen for an open topic.
type PlayScreen struct {
	ctx    context.Context
	engine topic.Engine
	sess   *session.Session
	clock  *session.Manual // nil when deadlines are off

	current session.Current
	result  *session.Result

	input   components.TextInput
	choices components.ChoiceList
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.BadgeProvider = (*PlayScreen)(nil)

// New creates a play screen. sink receives the topic statistics and may be nil.
func New(engine topic.Engine, sink session.Sink, opts Options) *PlayScreen {
	s := &PlayScreen{
		ctx:    context.Background(),
		engine: engine,
	}

	sessOpts := []session.Option{session.WithScheduler(nil)}
	if opts.Timer {
		s.clock = &session.Manual{}
		sessOpts = []session.Option{session.WithScheduler(s.clock)}
	}
	if opts.Source != nil {
		sessOpts = append(sessOpts, session.WithSource(opts.Source))
	}
	if opts.Logger != nil {
		sessOpts = append(sessOpts, session.WithLogger(opts.Logger))
	}
	s.sess = session.New(engine, sink, sessOpts...)
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	cmd := s.next()
	if s.clock == nil {
		return cmd
	}
	return tea.Batch(cmd, tickCmd(s.sess.ID()))
}

func (s *PlayScreen) Title() string {
	return s.engine.Info().Title
}

// Badge shows the topic's correct/asked counter in the header.
func (s *PlayScreen) Badge() string {
	c := s.current.Stats
	if s.result != nil {
		c = s.result.Stats
	}
	return fmt.Sprintf("✓ %d/%d", c.Correct, c.Asked)
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Q", Description: "Finish"},
		}
	}
	if s.multipleChoice() {
		return []layout.KeyHint{
			{Key: "1-4", Description: "Choose"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Ctrl+G", Description: "Show answer"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+G", Description: "Show answer"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward cursor blink and paste messages to the input.
	if s.result == nil && !s.multipleChoice() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// next serves a new question and resets the answer widgets.
func (s *PlayScreen) next() tea.Cmd {
	s.result = nil
	s.current = s.sess.Next(s.ctx)
	s.choices = components.NewChoiceList(s.current.Question.Choices())
	s.input = components.NewTextInput("Type your answer...", components.AnswerRunes, 12)
	if s.multipleChoice() {
		return nil
	}
	return s.input.Init()
}

func (s *PlayScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if msg.SessionID != s.sess.ID() || s.clock == nil {
		return s, nil
	}
	if s.clock.Advance(time.Second) > 0 {
		if r, ok := s.sess.Last(); ok && r.Index == s.current.Index {
			s.show(r)
		}
	}
	return s, tickCmd(s.sess.ID())
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.result != nil {
		switch key {
		case "q", "Q":
			sum := summary.New(s.sess.Summary(), s.engine)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
		}
		return s, s.next()
	}

	if key == "ctrl+g" {
		return s.resolved(s.sess.GiveUp(s.ctx))
	}

	if s.multipleChoice() {
		var picked string
		var ok bool
		s.choices, picked, ok = s.choices.Update(msg)
		if ok {
			return s.resolved(s.sess.Choose(s.ctx, picked))
		}
		return s, nil
	}

	if key == "enter" {
		answer := s.input.Value()
		if strings.TrimSpace(answer) == "" {
			return s, nil
		}
		return s.resolved(s.sess.Submit(s.ctx, answer))
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// resolved shows r when the stimulus won; a lost race means the deadline
// already resolved the question, so its result is shown instead.
func (s *PlayScreen) resolved(r session.Result, ok bool) (screen.Screen, tea.Cmd) {
	if !ok {
		r, ok = s.sess.Last()
		if !ok || r.Index != s.current.Index {
			return s, nil
		}
	}
	s.show(r)
	return s, nil
}

func (s *PlayScreen) show(r session.Result) {
	s.result = &r
	s.input.Submit(r.Correct())
	s.choices.Reveal(r.Verdict.Expected)
}

func (s *PlayScreen) multipleChoice() bool {
	return s.current.Question != nil && s.current.Question.Format() == topic.FormatMultipleChoice
}

// remaining returns the whole seconds left on the deadline.
func (s *PlayScreen) remaining() (int, bool) {
	if s.result != nil {
		return 0, false
	}
	d, ok := s.sess.Remaining()
	if !ok {
		return 0, false
	}
	return int((d + time.Second - 1) / time.Second), true
}

// tickCmd returns a 1-second tick command.
func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{SessionID: sessionID, At: t}
	})
}
