// Package session runs the question lifecycle for one topic: serve a
// question, resolve it by exactly one of submit, give-up or deadline, step
// the difficulty ladder and report to the statistics sink.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathplay/internal/arith"
	"github.com/abhisek/mathplay/internal/stats"
	"github.com/abhisek/mathplay/internal/topic"
)

// Session is the state of one practice run. All methods are safe for
// concurrent use; a deadline firing on a timer goroutine and a submission
// from the UI are serialized and the first one wins.
type Session struct {
	mu sync.Mutex

	id     string
	engine topic.Engine
	sink   Sink
	sched  Scheduler
	src    arith.Source
	logger *slog.Logger
	now    func() time.Time

	onTimeout func(Result)

	ladder   topic.Ladder
	phase    Phase
	index    int
	current  topic.Question
	limit    time.Duration
	deadline Timer
	last     *Result

	startedAt     time.Time
	startLevel    int
	peakLevel     int
	resolvedCount int
	correctCount  int
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the deadline scheduler. A nil scheduler disables
// deadlines.
func WithScheduler(sched Scheduler) Option {
	return func(s *Session) { s.sched = sched }
}

// WithSource sets the randomness for question generation.
func WithSource(src arith.Source) Option {
	return func(s *Session) { s.src = src }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock sets the time source used for the session duration.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithStartLevel starts the ladder at level instead of its minimum.
func WithStartLevel(level int) Option {
	return func(s *Session) { s.ladder.Set(level) }
}

// OnTimeout registers fn to receive the result of a question resolved by its
// deadline. fn runs on the scheduler's goroutine without the session lock.
func OnTimeout(fn func(Result)) Option {
	return func(s *Session) { s.onTimeout = fn }
}

// New starts a session for engine. sink may be nil.
func New(engine topic.Engine, sink Sink, opts ...Option) *Session {
	s := &Session{
		id:     uuid.New().String(),
		engine: engine,
		sink:   sink,
		sched:  WallClock{},
		src:    arith.NewSource(0),
		logger: slog.Default(),
		now:    time.Now,
		ladder: engine.Ladder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	s.startLevel = s.ladder.Level()
	s.peakLevel = s.startLevel
	return s
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// Engine returns the topic engine.
func (s *Session) Engine() topic.Engine { return s.engine }

// Phase returns the lifecycle phase of the current question.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Level returns the current difficulty level.
func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ladder.Level()
}

// Last returns the most recent result, if any question was resolved.
func (s *Session) Last() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Next serves a new question at the current level. Any pending deadline of
// the previous question is cancelled, which supersedes it if unresolved.
func (s *Session) Next(ctx context.Context) Current {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopDeadline()

	level := s.ladder.Level()
	s.index++
	s.current = s.engine.Generate(level, s.src)
	s.phase = PhaseQuestion
	s.limit = 0

	id := s.engine.Info().ID
	if s.sink != nil {
		if err := s.sink.BumpAsked(ctx, id); err != nil {
			s.logger.Warn("record asked question", "session", s.id, "topic", id, "error", err)
		}
	}

	if s.sched != nil {
		s.limit = s.engine.TimeLimit(level)
		idx := s.index
		s.deadline = s.sched.Schedule(s.limit, func() { s.expire(idx) })
	}

	return Current{
		Index:      s.index,
		Question:   s.current,
		Level:      level,
		LevelLabel: s.engine.LevelLabel(level),
		Progress:   s.ladder.Progress(),
		TimeLimit:  s.limit,
		Stats:      s.statsLocked(ctx),
	}
}

// Submit resolves the current question with a typed answer.
// It reports false when there is no unresolved question.
func (s *Session) Submit(ctx context.Context, text string) (Result, bool) {
	return s.resolveCurrent(ctx, topic.Answer(text))
}

// Choose resolves the current multiple-choice question.
func (s *Session) Choose(ctx context.Context, key string) (Result, bool) {
	return s.resolveCurrent(ctx, topic.Choose(key))
}

// GiveUp resolves the current question as incorrect.
func (s *Session) GiveUp(ctx context.Context) (Result, bool) {
	return s.resolveCurrent(ctx, topic.GiveUp())
}

// Expire resolves question index by timeout. A question that is already
// resolved, or has been superseded by a newer one, is left alone.
func (s *Session) Expire(ctx context.Context, index int) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(ctx, index, topic.Timeout())
}

// Stats returns the topic counters from the sink.
func (s *Session) Stats(ctx context.Context) stats.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked(ctx)
}

func (s *Session) expire(index int) {
	r, ok := s.Expire(context.Background(), index)
	if ok && s.onTimeout != nil {
		s.onTimeout(r)
	}
}

func (s *Session) resolveCurrent(ctx context.Context, sub topic.Submission) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(ctx, s.index, sub)
}

// resolve must be called with s.mu held.
func (s *Session) resolve(ctx context.Context, index int, sub topic.Submission) (Result, bool) {
	if s.phase != PhaseQuestion || index != s.index || s.current == nil {
		return Result{}, false
	}
	s.stopDeadline()
	s.phase = PhaseFeedback

	q := s.current
	id := s.engine.Info().ID
	v := q.Check(sub)

	if v.Correct && s.sink != nil {
		if err := s.sink.BumpCorrect(ctx, id); err != nil {
			s.logger.Warn("record correct answer", "session", s.id, "topic", id, "error", err)
		}
	}

	prev := s.ladder.Level()
	level := s.ladder.Apply(v.Correct)
	s.peakLevel = max(s.peakLevel, level)
	s.resolvedCount++
	if v.Correct {
		s.correctCount++
	}

	attrs := []any{
		"session", s.id,
		"topic", id,
		"index", index,
		"reason", sub.Reason,
		"correct", v.Correct,
		"given", v.Given,
		"level", prev,
		"next_level", level,
	}
	if v.Err != nil {
		attrs = append(attrs, "parse_error", v.Err)
	}
	s.logger.Debug("question resolved", attrs...)

	r := Result{
		Index:         index,
		Reason:        sub.Reason,
		Verdict:       v,
		Explanation:   q.Explain(sub, v),
		PreviousLevel: prev,
		Level:         level,
		LevelLabel:    s.engine.LevelLabel(level),
		Progress:      s.ladder.Progress(),
		Stats:         s.statsLocked(ctx),
	}
	s.last = &r
	return r, true
}

func (s *Session) stopDeadline() {
	if s.deadline != nil {
		s.deadline.Stop()
		s.deadline = nil
	}
}

func (s *Session) statsLocked(ctx context.Context) stats.Counts {
	if s.sink == nil {
		return stats.Counts{}
	}
	c, err := s.sink.Stats(ctx, s.engine.Info().ID)
	if err != nil {
		s.logger.Warn("read topic stats", "session", s.id, "error", err)
	}
	return c
}

// Remaining returns the time left on the current question's deadline when
// the session runs on a Manual scheduler.
func (s *Session) Remaining() (time.Duration, bool) {
	s.mu.Lock()
	sched, phase := s.sched, s.phase
	s.mu.Unlock()

	m, ok := sched.(*Manual)
	if !ok || phase != PhaseQuestion {
		return 0, false
	}
	return m.Remaining()
}
