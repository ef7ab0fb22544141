package topic

// Ladder is a bounded difficulty level moved one step per resolved question.
type Ladder struct {
	min, max int
	level    int
}

// NewLadder returns a ladder over [min, max] starting at min.
func NewLadder(min, max int) Ladder {
	if max < min {
		min, max = max, min
	}
	return Ladder{min: min, max: max, level: min}
}

// Level returns the current level.
func (l Ladder) Level() int { return l.level }

// Min returns the lowest level.
func (l Ladder) Min() int { return l.min }

// Max returns the highest level.
func (l Ladder) Max() int { return l.max }

// Set moves to level, clamped to the ladder's range.
func (l *Ladder) Set(level int) {
	l.level = max(l.min, min(l.max, level))
}

// Apply steps up after a correct answer and down otherwise.
// It returns the level after the step.
func (l *Ladder) Apply(correct bool) int {
	if correct {
		l.Set(l.level + 1)
	} else {
		l.Set(l.level - 1)
	}
	return l.level
}

// Progress is the position on the ladder in [0, 1].
func (l Ladder) Progress() float64 {
	if l.max == l.min {
		return 1
	}
	return float64(l.level-l.min) / float64(l.max-l.min)
}
