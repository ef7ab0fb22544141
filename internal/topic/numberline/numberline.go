// Package numberline is the fraction-placement topic: the learner picks which
// unit interval of the number line a fraction falls in.
package numberline

import (
	"fmt"
	"time"

	"github.com/abhisek/mathplay/internal/arith"
	"github.com/abhisek/mathplay/internal/topic"
)

const (
	MinLevel = 0
	MaxLevel = 3

	choiceCount = 4
)

// Bucket is an interval of the number line. Buckets are mutually exclusive.
type Bucket string

const (
	Bucket01    Bucket = "0-1"
	Bucket12    Bucket = "1-2"
	Bucket23    Bucket = "2-3"
	Bucket34    Bucket = "3-4"
	BucketAbove Bucket = "gt4"
)

// Buckets lists every bucket in number-line order.
var Buckets = []Bucket{Bucket01, Bucket12, Bucket23, Bucket34, BucketAbove}

// Label returns the learner-facing name of b.
func (b Bucket) Label() string {
	switch b {
	case Bucket01:
		return "between 0 and 1"
	case Bucket12:
		return "between 1 and 2"
	case Bucket23:
		return "between 2 and 3"
	case Bucket34:
		return "between 3 and 4"
	case BucketAbove:
		return "greater than 4"
	default:
		return string(b)
	}
}

// Valid reports whether b is one of Buckets.
func (b Bucket) Valid() bool {
	switch b {
	case Bucket01, Bucket12, Bucket23, Bucket34, BucketAbove:
		return true
	}
	return false
}

// BucketFor classifies value. 3-4 is closed at both ends; any other whole
// number falls into the bucket below it, so 1 is 0-1 and 2 is 1-2.
func BucketFor(value float64) Bucket {
	switch {
	case value > 4:
		return BucketAbove
	case value >= 3:
		return Bucket34
	case value > 2:
		return Bucket23
	case value > 1:
		return Bucket12
	default:
		return Bucket01
	}
}

// neighbors orders the distractors for each correct bucket, nearest first.
var neighbors = map[Bucket][]Bucket{
	Bucket01:    {Bucket12, Bucket23, BucketAbove, Bucket34},
	Bucket12:    {Bucket01, Bucket23, Bucket34, BucketAbove},
	Bucket23:    {Bucket12, Bucket34, Bucket01, BucketAbove},
	Bucket34:    {Bucket23, Bucket12, BucketAbove, Bucket01},
	BucketAbove: {Bucket34, Bucket23, Bucket12, Bucket01},
}

// ChoicesFor returns four distinct buckets including correct, shuffled.
func ChoicesFor(correct Bucket, src arith.Source) []Bucket {
	out := []Bucket{correct}
	seen := map[Bucket]bool{correct: true}
	add := func(list []Bucket) {
		for _, b := range list {
			if len(out) >= choiceCount {
				return
			}
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	add(neighbors[correct])
	add(Buckets)

	arith.Shuffle(src, out)
	return out
}

var (
	basicDenominators  = []int{2, 3, 4, 5, 6, 8, 10, 12}
	mixedDenominators  = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 12}
	widerDenominators  = []int{3, 4, 5, 6, 7, 8, 9, 10, 12, 14, 15, 16}
	levelLabels        = []string{"easy", "easy+", "medium", "medium+"}
	denominatorByLevel = [][]int{basicDenominators, basicDenominators, mixedDenominators, widerDenominators}
)

// Engine generates placement questions.
type Engine struct{}

var _ topic.Engine = (*Engine)(nil)

func New() *Engine { return &Engine{} }

func (*Engine) Info() topic.Info {
	return topic.Info{
		ID:       topic.Numberline,
		Title:    "Fractions on the Number Line",
		Grade:    "Grade 5",
		Duration: "5–10 min",
	}
}

func (*Engine) Ladder() topic.Ladder { return topic.NewLadder(MinLevel, MaxLevel) }

func (*Engine) LevelLabel(level int) string {
	return levelLabels[max(MinLevel, min(level, MaxLevel))]
}

func (*Engine) TimeLimit(level int) time.Duration {
	return time.Duration(60+max(level, 0)*10) * time.Second
}

// Generate draws a denominator for the level, then a numerator. Level 0
// stays below 1, level 1 between 1 and 4. Levels 2 and 3 flip a coin
// between [1, 4d) and a range above 4 that is wider at level 3.
func (*Engine) Generate(level int, src arith.Source) topic.Question {
	level = max(MinLevel, min(level, MaxLevel))
	d := arith.Pick(src, denominatorByLevel[level])

	var n int
	switch level {
	case 0:
		n = arith.RandInt(src, 1, d-1)
	case 1:
		n = arith.RandInt(src, d+1, 4*d-1)
	default:
		top := 7 * d
		if level == 3 {
			top = 9 * d
		}
		if arith.RandInt(src, 0, 1) == 1 {
			n = arith.RandInt(src, 5*d, top-1)
		} else {
			n = arith.RandInt(src, 1, 4*d-1)
		}
	}

	f := arith.Simplify(n, d)
	correct := BucketFor(f.Value())
	return NewQuestion(level, f, ChoicesFor(correct, src))
}

// Question asks where Fraction sits on the number line.
type Question struct {
	level int

	Fraction arith.Fraction
	Correct  Bucket
	Options  []Bucket
}

var _ topic.Question = (*Question)(nil)

// NewQuestion builds a question for f with the given choice buckets.
func NewQuestion(level int, f arith.Fraction, options []Bucket) *Question {
	return &Question{
		level:    level,
		Fraction: f,
		Correct:  BucketFor(f.Value()),
		Options:  options,
	}
}

func (q *Question) Prompt() string {
	return fmt.Sprintf("Where is the fraction %s ?", q.Fraction)
}

func (q *Question) Format() topic.Format { return topic.FormatMultipleChoice }
func (q *Question) Level() int           { return q.level }

func (q *Question) Choices() []topic.Choice {
	out := make([]topic.Choice, len(q.Options))
	for i, b := range q.Options {
		out[i] = topic.Choice{Key: string(b), Label: b.Label()}
	}
	return out
}

// Check matches the chosen key exactly. A typed answer is read as a key.
func (q *Question) Check(sub topic.Submission) topic.Verdict {
	v := topic.Verdict{Expected: q.Correct.Label()}
	if !sub.HasAnswer() {
		return v
	}

	key := sub.Choice
	if key == "" {
		key = topic.NormalizeInput(sub.Text)
	}
	b := Bucket(key)
	if !b.Valid() {
		v.Err = fmt.Errorf("%w: unknown choice %q", topic.ErrMalformed, key)
		return v
	}

	v.Given = b.Label()
	v.Correct = b == q.Correct
	return v
}

func (q *Question) Explain(sub topic.Submission, v topic.Verdict) topic.Explanation {
	n, d := q.Fraction.N, q.Fraction.D
	whole, rem := n/d, n%d

	steps := []topic.Statement{topic.Say("Divide: %v ÷ %v.", n, d)}
	if rem == 0 {
		steps = append(steps,
			topic.Say("It comes out whole: %v. So it sits exactly on %v on the number line.", whole, whole),
			topic.Say("A whole number sits on its own point, which here counts as %v.", q.Correct.Label()),
		)
	} else {
		steps = append(steps,
			topic.Say("That is %v with remainder %v, so it is %v and %v/%v.", whole, rem, whole, rem, d),
			topic.Say("So the fraction is greater than %v and less than %v, which is %v.", whole, whole+1, q.Correct.Label()),
		)
	}
	if q.Correct == BucketAbove {
		steps = append(steps, topic.Say("Because %v is greater than 4.", q.Fraction))
	}

	return topic.Explanation{
		Headline: topic.Headline(sub.Reason, v.Correct),
		Summary: []topic.Statement{
			topic.Say("The fraction: %v", q.Fraction),
			topic.Say("Your answer: %v", topic.GivenOr(v)),
			topic.Say("Correct answer: %v", q.Correct.Label()),
		},
		Steps: steps,
	}
}
