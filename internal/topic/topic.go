// Package topic defines the shape shared by every practice topic: the engine
// that generates questions, the questions themselves, learner submissions,
// verdicts and explanations.
package topic

import (
	"errors"
	"time"

	"github.com/abhisek/mathplay/internal/arith"
)

// ID identifies a topic. It is also the key under which statistics are stored.
type ID string

const (
	CommonDenominator ID = "common-denominator"
	ReduceFractions   ID = "reduce-fractions"
	Average           ID = "average"
	Numberline        ID = "fractions-on-numberline"
)

// Info describes a topic for menus and listings.
type Info struct {
	ID       ID
	Title    string
	Grade    string
	Duration string // recommended session length, e.g. "5–10 min"
}

// Format describes how the learner provides an answer.
type Format string

const (
	// FormatFreeText means the learner types an answer.
	FormatFreeText Format = "free_text"

	// FormatMultipleChoice means the learner picks one of the question's choices.
	FormatMultipleChoice Format = "multiple_choice"
)

// Choice is one option of a multiple-choice question.
type Choice struct {
	Key   string
	Label string
}

// ErrMalformed marks an answer that could not be parsed into the expected shape.
// A malformed answer is simply incorrect; the error is kept for logging.
var ErrMalformed = errors.New("malformed answer")

// Engine generates questions for one topic.
// Implementations are stateless; all session state lives with the caller.
type Engine interface {
	// Info returns the catalog entry for the topic.
	Info() Info

	// Ladder returns a new difficulty ladder at the topic's starting level.
	Ladder() Ladder

	// LevelLabel returns the display name of a level.
	LevelLabel(level int) string

	// TimeLimit returns how long the learner has to answer at a level.
	TimeLimit(level int) time.Duration

	// Generate produces a question for level. It never fails and never loops.
	Generate(level int, src arith.Source) Question
}

// Question is an immutable, generated problem with an authoritative answer.
type Question interface {
	// Prompt is the human-readable question text.
	Prompt() string

	// Format tells the presentation layer which input to offer.
	Format() Format

	// Choices is non-empty only for FormatMultipleChoice.
	Choices() []Choice

	// Level is the difficulty level the question was generated for.
	Level() int

	// Check validates a submission. An empty submission is always incorrect.
	Check(sub Submission) Verdict

	// Explain builds the feedback for a resolved question.
	Explain(sub Submission, v Verdict) Explanation
}

// Verdict is the outcome of checking one submission.
type Verdict struct {
	Correct bool

	// Given is the learner's answer as it should be echoed back.
	// Empty when there was no usable answer.
	Given string

	// Expected is the canonical correct answer for display.
	Expected string

	// Err is non-nil (wrapping ErrMalformed) when the answer did not parse.
	Err error
}
