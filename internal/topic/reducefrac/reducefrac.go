// Package reducefrac is the fraction-reduction topic: the learner is shown an
// unreduced fraction and types its lowest-terms form.
package reducefrac

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/abhisek/mathplay/internal/arith"
	"github.com/abhisek/mathplay/internal/topic"
)

const (
	MinLevel = 0
	MaxLevel = 3

	// maxTerm bounds the numerator and denominator of a generated fraction.
	maxTerm = 120

	fallbackFactor = 2
)

var levelLabels = []string{"easy", "easy+", "medium", "medium+"}

var basePool = []arith.Fraction{
	{N: 1, D: 2}, {N: 1, D: 3}, {N: 2, D: 3},
	{N: 1, D: 4}, {N: 3, D: 4},
	{N: 2, D: 5}, {N: 3, D: 5}, {N: 4, D: 5},
	{N: 3, D: 8},
}

var factorPools = [][]int{
	{2, 3},
	{2, 3, 4, 5, 6},
	{4, 6, 8, 9, 10, 12},
	{6, 8, 10, 12, 14, 15},
}

var fractionRe = regexp.MustCompile(`^\s*(-?\d+)\s*/\s*(-?\d+)\s*$`)

// Engine generates reduction questions.
type Engine struct{}

var _ topic.Engine = (*Engine)(nil)

func New() *Engine { return &Engine{} }

func (*Engine) Info() topic.Info {
	return topic.Info{
		ID:       topic.ReduceFractions,
		Title:    "Reduce Fractions",
		Grade:    "Grade 5",
		Duration: "5–10 min",
	}
}

func (*Engine) Ladder() topic.Ladder { return topic.NewLadder(MinLevel, MaxLevel) }

func (*Engine) LevelLabel(level int) string {
	return levelLabels[max(MinLevel, min(level, MaxLevel))]
}

// TimeLimit grows by ten seconds per level.
func (*Engine) TimeLimit(level int) time.Duration {
	return time.Duration(60+max(level, 0)*10) * time.Second
}

func (*Engine) Generate(level int, src arith.Source) topic.Question {
	base := arith.Pick(src, basePool)
	pool := factorPools[max(MinLevel, min(level, MaxLevel))]
	return NewQuestion(level, base, arith.Pick(src, pool))
}

// Question asks for the lowest-terms form of Shown.
type Question struct {
	level int

	// Shown is Base scaled by Factor.
	Shown  arith.Fraction
	Base   arith.Fraction
	Factor int
}

var _ topic.Question = (*Question)(nil)

// NewQuestion scales base by k. A result with a term above 120 is replaced
// by base scaled by 2.
func NewQuestion(level int, base arith.Fraction, k int) *Question {
	shown := base.Scale(k)
	if shown.N > maxTerm || shown.D > maxTerm {
		k = fallbackFactor
		shown = base.Scale(k)
	}
	return &Question{level: level, Shown: shown, Base: base, Factor: k}
}

func (q *Question) Prompt() string {
	return fmt.Sprintf("Reduce the fraction: %s", q.Shown)
}

func (q *Question) Format() topic.Format     { return topic.FormatFreeText }
func (q *Question) Choices() []topic.Choice { return nil }
func (q *Question) Level() int              { return q.level }

// Reduced is the canonical reduction of the shown fraction.
func (q *Question) Reduced() arith.Fraction { return q.Shown.Simplify() }

// ParseFraction reads "n/d" with optional whitespace and signs. A negative
// denominator moves its sign to the numerator.
func ParseFraction(text string) (arith.Fraction, error) {
	m := fractionRe.FindStringSubmatch(text)
	if m == nil {
		return arith.Fraction{}, fmt.Errorf("%w: %q is not of the form a/b", topic.ErrMalformed, text)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return arith.Fraction{}, fmt.Errorf("%w: numerator: %v", topic.ErrMalformed, err)
	}
	d, err := strconv.Atoi(m[2])
	if err != nil {
		return arith.Fraction{}, fmt.Errorf("%w: denominator: %v", topic.ErrMalformed, err)
	}
	if d == 0 {
		return arith.Fraction{}, fmt.Errorf("%w: zero denominator", topic.ErrMalformed)
	}
	if d < 0 {
		n, d = -n, -d
	}
	return arith.Fraction{N: n, D: d}, nil
}

func (q *Question) Check(sub topic.Submission) topic.Verdict {
	want := q.Reduced()
	v := topic.Verdict{Expected: want.String()}
	if !sub.HasAnswer() {
		return v
	}

	f, err := ParseFraction(topic.NormalizeInput(sub.Text))
	if err != nil {
		v.Err = err
		return v
	}

	v.Given = f.String()
	v.Correct = f.IsReduced() && f == want
	return v
}

func (q *Question) Explain(sub topic.Submission, v topic.Verdict) topic.Explanation {
	want := q.Reduced()
	g := arith.GCD(q.Shown.N, q.Shown.D)

	given := v.Given
	if given == "" && sub.HasAnswer() {
		given = "(not of the form a/b)"
	} else if given == "" {
		given = topic.NoAnswer
	}

	return topic.Explanation{
		Headline: topic.Headline(sub.Reason, v.Correct),
		Summary: []topic.Statement{
			topic.Say("The fraction was %v.", q.Shown),
			topic.Say("Your answer: %v", given),
			topic.Say("Reduced form: %v", want),
		},
		Steps: []topic.Statement{
			topic.Say("Look for a number that divides both the numerator and the denominator."),
			topic.Say("Here you can divide by %v:", g),
			topic.Say("%v ÷ %v = %v and %v ÷ %v = %v", q.Shown.N, g, want.N, q.Shown.D, g, want.D),
			topic.Say("After reducing, no number greater than 1 divides both, so the fraction is fully reduced."),
		},
	}
}
