// Package average is the arithmetic-mean topic. The level is the count of
// numbers shown, and every generated mean is a whole number.
package average

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
	MinLevel = 1
	MaxLevel = 6

	minMean, maxMean = 1, 12

	// spread is how far a generated number may sit from the mean.
	spread = 3

	// maxLast bounds the balancing number before falling back.
	maxLast = 30

	tolerance = 1e-9
)

// Engine generates average questions.
type Engine struct{}

var _ topic.Engine = (*Engine)(nil)

func New() *Engine { return &Engine{} }

func (*Engine) Info() topic.Info {
	return topic.Info{
		ID:       topic.Average,
		Title:    "Average",
		Grade:    "Grade 5",
		Duration: "5–10 min",
	}
}

func (*Engine) Ladder() topic.Ladder { return topic.NewLadder(MinLevel, MaxLevel) }

func (*Engine) LevelLabel(level int) string {
	n := max(MinLevel, min(level, MaxLevel))
	if n == 1 {
		return "1 number"
	}
	return fmt.Sprintf("%d numbers", n)
}

func (*Engine) TimeLimit(level int) time.Duration {
	n := max(MinLevel, min(level, MaxLevel))
	return time.Duration(60+(n-1)*10) * time.Second
}

// Generate picks a mean, draws count-1 numbers near it and sets the last so
// the mean is exact. If the last number lands outside [0, 30] every number
// is the mean instead.
func (*Engine) Generate(level int, src arith.Source) topic.Question {
	count := max(MinLevel, min(level, MaxLevel))
	mean := arith.RandInt(src, minMean, maxMean)

	if count == 1 {
		return NewQuestion(level, []int{mean})
	}

	nums := make([]int, 0, count)
	sum := 0
	for range count - 1 {
		n := max(0, mean+arith.RandInt(src, -spread, spread))
		nums = append(nums, n)
		sum += n
	}
	last := mean*count - sum
	if last < 0 || last > maxLast {
		return NewQuestion(level, Uniform(mean, count))
	}
	nums = append(nums, last)

	arith.Shuffle(src, nums)
	return NewQuestion(level, nums)
}

// Uniform returns count copies of mean.
func Uniform(mean, count int) []int {
	nums := make([]int, count)
	for i := range nums {
		nums[i] = mean
	}
	return nums
}

// Question asks for the mean of Numbers.
type Question struct {
	level int

	Numbers []int
	Sum     int
	Mean    int
}

var _ topic.Question = (*Question)(nil)

// NewQuestion builds a question over nums. The integer mean is exact only
// when the sum divides evenly, which Generate guarantees.
func NewQuestion(level int, nums []int) *Question {
	sum := 0
	for _, n := range nums {
		sum += n
	}
	mean := 0
	if len(nums) > 0 {
		mean = sum / len(nums)
	}
	return &Question{level: level, Numbers: nums, Sum: sum, Mean: mean}
}

func (q *Question) Prompt() string {
	if len(q.Numbers) == 1 {
		return fmt.Sprintf("What is the average of %d?", q.Numbers[0])
	}
	return fmt.Sprintf("What is the average of the numbers: %s ?", joinInts(q.Numbers))
}

func (q *Question) Format() topic.Format     { return topic.FormatFreeText }
func (q *Question) Choices() []topic.Choice { return nil }
func (q *Question) Level() int              { return q.level }

// ParseNumber reads a plain decimal answer, accepting a comma as the
// decimal mark.
func ParseNumber(text string) (float64, error) {
	return topic.ParseDecimal(text)
}

func (q *Question) Check(sub topic.Submission) topic.Verdict {
	v := topic.Verdict{Expected: strconv.Itoa(q.Mean)}
	if !sub.HasAnswer() {
		return v
	}

	x, err := ParseNumber(topic.NormalizeInput(sub.Text))
	if err != nil {
		v.Err = err
		return v
	}

	v.Given = strconv.FormatFloat(x, 'f', -1, 64)
	v.Correct = math.Abs(x-float64(q.Mean)) < tolerance
	return v
}

func (q *Question) Explain(sub topic.Submission, v topic.Verdict) topic.Explanation {
	count := len(q.Numbers)
	return topic.Explanation{
		Headline: topic.Headline(sub.Reason, v.Correct),
		Summary: []topic.Statement{
			topic.Say("Your answer: %v", topic.GivenOr(v)),
			topic.Say("Correct answer: %v", q.Mean),
		},
		Steps: []topic.Statement{
			topic.Say("Step 1: add all the numbers. Sum = %v.", q.Sum),
			topic.Say("Step 2: divide by how many numbers there are (%v).", count),
			topic.Say("%v ÷ %v = %v", q.Sum, count, q.Mean),
			topic.Say("The average sits in the middle. It does not have to be one of the numbers, but here it always comes out whole to keep things easy."),
		},
	}
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
