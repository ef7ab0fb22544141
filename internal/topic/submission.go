package topic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Reason records which stimulus resolved a question.
type Reason string

const (
	ReasonSubmit  Reason = "submit"
	ReasonGiveUp  Reason = "giveup"
	ReasonTimeout Reason = "timeout"
)

// Submission is what the learner handed in for a question.
// Give-up and timeout submissions carry no answer.
type Submission struct {
	Reason Reason
	Text   string // free-text answer
	Choice string // selected choice key
}

// Answer is a typed free-text submission.
func Answer(text string) Submission {
	return Submission{Reason: ReasonSubmit, Text: text}
}

// Choose is a multiple-choice submission.
func Choose(key string) Submission {
	return Submission{Reason: ReasonSubmit, Choice: key}
}

// GiveUp is the learner asking for the answer.
func GiveUp() Submission {
	return Submission{Reason: ReasonGiveUp}
}

// Timeout is the deadline elapsing before an answer arrived.
func Timeout() Submission {
	return Submission{Reason: ReasonTimeout}
}

// HasAnswer reports whether the submission carries anything to check.
func (s Submission) HasAnswer() bool {
	return s.Reason == ReasonSubmit && (s.Text != "" || s.Choice != "")
}

// NormalizeInput folds compatibility characters (full-width digits, the
// fraction slash) to ASCII and trims surrounding whitespace.
func NormalizeInput(s string) string {
	s = norm.NFKC.String(s)
	s = strings.NewReplacer("⁄", "/", "∕", "/").Replace(s)
	return strings.TrimSpace(s)
}

// plainDecimal is an optional sign, digits and at most one decimal point.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// ParseDecimal reads a plain decimal such as "6", "-2" or "6.5". A comma
// is accepted as the decimal mark. Exponents, hex floats and the Inf/NaN
// words are malformed.
func ParseDecimal(text string) (float64, error) {
	s := strings.Replace(strings.TrimSpace(text), ",", ".", 1)
	if !plainDecimal.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformed, text)
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", ErrMalformed, text)
	}
	return x, nil
}
