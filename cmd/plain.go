package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/abhisek/mathplay/internal/session"
	"github.com/abhisek/mathplay/internal/topic"
)

// runPlain asks questions line by line until "quit" or the end of input.
// Deadlines run on the wall clock; a timeout prints its feedback from the
// timer goroutine and the next Enter moves on.
func runPlain(ctx context.Context, in io.Reader, out io.Writer, engine topic.Engine, sink session.Sink, opts ...session.Option) error {
	var mu sync.Mutex
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, format, args...)
	}

	opts = append(opts, session.OnTimeout(func(r session.Result) {
		printf("\n\n%s(press Enter for the next question)\n", feedback(r))
	}))
	sess := session.New(engine, sink, opts...)
	lines := bufio.NewScanner(in)

	info := engine.Info()
	printf("%s (%s). Type ? to see the answer, quit to stop.\n\n", info.Title, info.Grade)

	for {
		cur := sess.Next(ctx)
		printf("── Question %d · %s ──\n%s\n", cur.Index, cur.LevelLabel, cur.Question.Prompt())
		for i, c := range cur.Question.Choices() {
			printf("  %d) %s\n", i+1, c.Label)
		}
		if cur.TimeLimit > 0 {
			printf("(%s to answer)\n", cur.TimeLimit)
		}

		line, ok := readAnswer(lines, sess, printf)
		if !ok {
			printf("\n(input closed)\n")
			break
		}
		if line == "quit" {
			break
		}

		var r session.Result
		switch {
		case line == "?":
			r, ok = sess.GiveUp(ctx)
		case cur.Question.Format() == topic.FormatMultipleChoice:
			r, ok = sess.Choose(ctx, choiceKey(cur.Question, line))
		default:
			r, ok = sess.Submit(ctx, line)
		}
		if !ok {
			// The deadline won; its feedback is already on screen.
			continue
		}
		printf("%s\n", feedback(r))
	}

	sum := sess.Summary()
	printf("── Summary: %d/%d correct ──\n", sum.Correct, sum.Questions)
	return lines.Err()
}

// readAnswer reads the next non-empty line. An empty line is returned only
// once the question is no longer open.
func readAnswer(lines *bufio.Scanner, sess *session.Session, printf func(string, ...any)) (string, bool) {
	for {
		printf("Your answer: ")
		if !lines.Scan() {
			return "", false
		}
		line := strings.TrimSpace(lines.Text())
		if line != "" || sess.Phase() != session.PhaseQuestion {
			return line, true
		}
	}
}

// choiceKey maps "1".."n" to the key of that choice; anything else is
// passed through as a key.
func choiceKey(q topic.Question, line string) string {
	choices := q.Choices()
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1].Key
	}
	return line
}

func feedback(r session.Result) string {
	var b strings.Builder
	b.WriteString(r.Explanation.Text())
	switch {
	case r.Level > r.PreviousLevel:
		fmt.Fprintf(&b, "Level up: %s\n", r.LevelLabel)
	case r.Level < r.PreviousLevel:
		fmt.Fprintf(&b, "Level down: %s\n", r.LevelLabel)
	}
	fmt.Fprintf(&b, "Score: %d/%d\n", r.Stats.Correct, r.Stats.Asked)
	return b.String()
}
