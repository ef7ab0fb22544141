// Package commonden is the common-denominator topic: the learner is shown two
// fractions and must name any number both denominators divide.
package commonden

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/mathplay/internal/arith"
	"github.com/abhisek/mathplay/internal/topic"
)

const (
	MinLevel = 0
	MaxLevel = 2

	// exampleCap bounds the example denominators shown in feedback.
	exampleCap = 120

	timeLimit = 60 * time.Second
)

var levelLabels = []string{"very easy", "easy", "medium"}

// Denominator pools per level. Level 0 pairs a denominator with itself,
// level 1 pairs one with a multiple, level 2 pairs whose LCM is neither.
var (
	samePool = []int{2, 3, 4, 5, 6, 8, 10}

	divisorPairs = [][2]int{
		{2, 4}, {2, 6}, {2, 8}, {2, 10},
		{3, 6}, {3, 9}, {3, 12},
		{4, 8}, {4, 12},
		{5, 10},
		{6, 12},
	}

	compositePairs = [][2]int{
		{4, 10},  // 20
		{6, 10},  // 30
		{6, 8},   // 24
		{8, 12},  // 24
		{9, 6},   // 18
		{10, 12}, // 60
	}
)

// Engine generates common-denominator questions.
type Engine struct{}

var _ topic.Engine = (*Engine)(nil)

// New returns the engine.
func New() *Engine { return &Engine{} }

func (*Engine) Info() topic.Info {
	return topic.Info{
		ID:       topic.CommonDenominator,
		Title:    "Common Denominator",
		Grade:    "Grade 5",
		Duration: "5–10 min",
	}
}

func (*Engine) Ladder() topic.Ladder { return topic.NewLadder(MinLevel, MaxLevel) }

func (*Engine) LevelLabel(level int) string {
	return levelLabels[max(MinLevel, min(level, MaxLevel))]
}

func (*Engine) TimeLimit(int) time.Duration { return timeLimit }

func (*Engine) Generate(level int, src arith.Source) topic.Question {
	var pair [2]int
	switch {
	case level <= 0:
		d := arith.Pick(src, samePool)
		pair = [2]int{d, d}
	case level == 1:
		pair = arith.Pick(src, divisorPairs)
	default:
		pair = arith.Pick(src, compositePairs)
	}

	d1, d2 := pair[0], pair[1]
	f1 := arith.Simplify(arith.RandInt(src, 1, d1-1), d1)
	f2 := arith.Simplify(arith.RandInt(src, 1, d2-1), d2)
	return NewQuestion(level, f1, f2)
}

// Question asks for a common denominator of two fractions.
type Question struct {
	level int

	First, Second arith.Fraction

	// SmallestCommon is the LCM of the two shown denominators.
	SmallestCommon int

	// Examples holds SmallestCommon and its multiples up to exampleCap,
	// padded by repeating the last value.
	Examples [3]int
}

var _ topic.Question = (*Question)(nil)

// NewQuestion builds a question from two already-simplified fractions.
func NewQuestion(level int, first, second arith.Fraction) *Question {
	s := arith.LCM(first.D, second.D)

	examples := []int{s}
	for _, k := range []int{2, 3} {
		if s*k <= exampleCap {
			examples = append(examples, s*k)
		}
	}
	for len(examples) < 3 {
		examples = append(examples, examples[len(examples)-1])
	}

	return &Question{
		level:          level,
		First:          first,
		Second:         second,
		SmallestCommon: s,
		Examples:       [3]int{examples[0], examples[1], examples[2]},
	}
}

// IsValidCommonDenominator reports whether x is a positive common multiple
// of d1 and d2.
func IsValidCommonDenominator(x, d1, d2 int) bool {
	return x > 0 && x%d1 == 0 && x%d2 == 0
}

func (q *Question) Prompt() string {
	return fmt.Sprintf("Find a common denominator: %s and %s", q.First, q.Second)
}

func (q *Question) Format() topic.Format     { return topic.FormatFreeText }
func (q *Question) Choices() []topic.Choice { return nil }
func (q *Question) Level() int              { return q.level }

func (q *Question) Check(sub topic.Submission) topic.Verdict {
	v := topic.Verdict{Expected: strconv.Itoa(q.SmallestCommon)}
	if !sub.HasAnswer() {
		return v
	}

	text := topic.NormalizeInput(sub.Text)
	x, err := parseWhole(text)
	if err != nil {
		v.Err = err
		return v
	}

	v.Given = strconv.Itoa(x)
	v.Correct = IsValidCommonDenominator(x, q.First.D, q.Second.D)
	return v
}

// parseWhole reads an integer answer. A decimal with only zeros after the
// point, such as "12.0", counts as that integer.
func parseWhole(text string) (int, error) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := topic.ParseDecimal(text)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q is not a whole number", topic.ErrMalformed, text)
	}
	return int(f), nil
}

func (q *Question) Explain(sub topic.Submission, v topic.Verdict) topic.Explanation {
	d1, d2 := q.First.D, q.Second.D

	steps := []topic.Statement{
		topic.Say("To be a common denominator of both fractions, a number must be divisible by both %v and %v.", d1, d2),
		topic.Say("The least common denominator (the LCM) is %v.", q.SmallestCommon),
	}
	if q.level >= MaxLevel {
		steps = append(steps, topic.Say("At this level the LCM is sometimes not one of the denominators in the question, and that is fine."))
	}
	steps = append(steps, examplesStatement(q.Examples))

	if !v.Correct {
		if v.Given == "" {
			steps = append(steps, topic.Say("A quick check: is your answer divisible by %v? And is it divisible by %v?", d1, d2))
		} else {
			steps = append(steps, topic.Say("A quick check: is %v divisible by %v? And is it divisible by %v?", v.Given, d1, d2))
		}
	}

	return topic.Explanation{
		Headline: topic.Headline(sub.Reason, v.Correct),
		Summary: []topic.Statement{
			topic.Say("The fractions were %v and %v.", q.First, q.Second),
			topic.Say("Your answer: %v", topic.GivenOr(v)),
		},
		Steps: steps,
	}
}

// examplesStatement lists the distinct example denominators.
func examplesStatement(examples [3]int) topic.Statement {
	var args []any
	for i, e := range examples {
		if i > 0 && e == examples[i-1] {
			continue
		}
		args = append(args, e)
	}
	verbs := strings.TrimSuffix(strings.Repeat("%v, ", len(args)), ", ")
	return topic.Say("Examples of common denominators: "+verbs+".", args...)
}
