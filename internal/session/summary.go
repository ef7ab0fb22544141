package session

import (
	"time"

	"github.com/abhisek/mathplay/internal/topic"
)

// Summary holds the data displayed when a session ends.
type Summary struct {
	SessionID string
	Topic     topic.ID

	Duration  time.Duration
	Questions int
	Correct   int
	Accuracy  float64

	StartLevel int
	Level      int
	PeakLevel  int
}

// Summary reports on the questions resolved so far.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var accuracy float64
	if s.resolvedCount > 0 {
		accuracy = float64(s.correctCount) / float64(s.resolvedCount)
	}

	return Summary{
		SessionID:  s.id,
		Topic:      s.engine.Info().ID,
		Duration:   s.now().Sub(s.startedAt),
		Questions:  s.resolvedCount,
		Correct:    s.correctCount,
		Accuracy:   accuracy,
		StartLevel: s.startLevel,
		Level:      s.ladder.Level(),
		PeakLevel:  s.peakLevel,
	}
}
