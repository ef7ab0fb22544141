package session

import (
	"context"
	"time"

	"github.com/abhisek/mathplay/internal/stats"
	"github.com/abhisek/mathplay/internal/topic"
)

// Sink receives the per-topic counters. *stats.Tracker implements it.
type Sink interface {
	BumpAsked(ctx context.Context, id topic.ID) error
	BumpCorrect(ctx context.Context, id topic.ID) error
	Stats(ctx context.Context, id topic.ID) (stats.Counts, error)
}

var _ Sink = (*stats.Tracker)(nil)

// Phase represents where the current question is in its lifecycle.
type Phase int

const (
	PhaseIdle     Phase = iota // No question served yet
	PhaseQuestion              // Waiting for submit, give-up or deadline
	PhaseFeedback              // Question resolved, showing the explanation
)

func (p Phase) String() string {
	switch p {
	case PhaseQuestion:
		return "question"
	case PhaseFeedback:
		return "feedback"
	default:
		return "idle"
	}
}

// Current describes the question being served.
type Current struct {
	// Index is the 1-based position of the question in this session.
	Index int

	Question topic.Question

	Level      int
	LevelLabel string

	// Progress is the ladder position in [0, 1].
	Progress float64

	// TimeLimit is zero when deadlines are disabled.
	TimeLimit time.Duration

	// Stats are the topic counters after this question was counted as asked.
	Stats stats.Counts
}

// Result is the outcome of one resolved question.
type Result struct {
	Index  int
	Reason topic.Reason

	Verdict     topic.Verdict
	Explanation topic.Explanation

	// PreviousLevel is the level the question was generated at; Level is
	// the level after the progression step.
	PreviousLevel int
	Level         int
	LevelLabel    string
	Progress      float64

	Stats stats.Counts
}

// Correct is shorthand for r.Verdict.Correct.
func (r Result) Correct() bool { return r.Verdict.Correct }
