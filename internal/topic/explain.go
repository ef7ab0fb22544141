package topic

import (
	"fmt"
	"strings"
)

// Statement is one line of feedback: a format template and the resolved
// values substituted into it. Keeping values apart from the template lets a
// renderer emphasize them.
type Statement struct {
	Template string
	Args     []any
}

// Say builds a Statement. Templates use %v verbs only.
func Say(template string, args ...any) Statement {
	return Statement{Template: template, Args: args}
}

// Render formats the statement, passing every value through emph first.
func (s Statement) Render(emph func(string) string) string {
	vals := make([]any, len(s.Args))
	for i, a := range s.Args {
		v := fmt.Sprint(a)
		if emph != nil {
			v = emph(v)
		}
		vals[i] = v
	}
	return fmt.Sprintf(s.Template, vals...)
}

func (s Statement) String() string {
	return s.Render(nil)
}

// Explanation is the feedback for a resolved question.
type Explanation struct {
	// Headline is e.g. "Time's up! Not quite."
	Headline string

	// Summary echoes the question, the learner's answer and the correct one.
	Summary []Statement

	// Steps walk through the solution.
	Steps []Statement
}

// Headline returns the verdict line for a resolved question.
func Headline(reason Reason, correct bool) string {
	ok := "Not quite."
	if correct {
		ok = "Correct!"
	}
	if reason == ReasonTimeout {
		return "Time's up! " + ok
	}
	return ok
}

// Text renders the whole explanation as plain lines.
func (e Explanation) Text() string {
	var b strings.Builder
	b.WriteString(e.Headline)
	b.WriteString("\n")
	for _, s := range e.Summary {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	if len(e.Steps) > 0 {
		b.WriteString("\n")
	}
	for _, s := range e.Steps {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}

// NoAnswer is how a missing answer is echoed back.
const NoAnswer = "(none)"

// GivenOr returns v.Given, or NoAnswer when it is empty.
func GivenOr(v Verdict) string {
	if v.Given == "" {
		return NoAnswer
	}
	return v.Given
}
