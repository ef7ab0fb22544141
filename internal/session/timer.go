package session

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Scheduler arranges for fire to run once after d.
type Scheduler interface {
	Schedule(d time.Duration, fire func()) Timer
}

// Timer is a pending deadline.
type Timer interface {
	// Stop cancels the deadline. It reports whether fire was still pending.
	Stop() bool
}

// WallClock schedules on real time. fire runs on its own goroutine.
type WallClock struct{}

func (WallClock) Schedule(d time.Duration, fire func()) Timer {
	return time.AfterFunc(d, fire)
}

// Manual is a Scheduler driven by Advance. The TUI advances it from its
// tick loop; tests advance it directly.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  int
	pending []*manualTimer
}

type manualTimer struct {
	m    *Manual
	id   int
	due  time.Duration
	fire func()
}

func (m *Manual) Schedule(d time.Duration, fire func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := &manualTimer{m: m, id: m.nextID, due: m.now + d, fire: fire}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	i := slices.Index(t.m.pending, t)
	if i < 0 {
		return false
	}
	t.m.pending = slices.Delete(t.m.pending, i, i+1)
	return true
}

// Advance moves time forward by d and runs every timer that came due, in
// due order. It returns how many fired.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	m.now += d
	var due []*manualTimer
	m.pending = slices.DeleteFunc(m.pending, func(t *manualTimer) bool {
		if t.due <= m.now {
			due = append(due, t)
			return true
		}
		return false
	})
	m.mu.Unlock()

	slices.SortFunc(due, func(a, b *manualTimer) int {
		return cmp.Or(cmp.Compare(a.due, b.due), cmp.Compare(a.id, b.id))
	})
	for _, t := range due {
		t.fire()
	}
	return len(due)
}

// Pending returns the number of scheduled timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Remaining returns the time left on the earliest pending timer.
func (m *Manual) Remaining() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return 0, false
	}
	least := m.pending[0].due
	for _, t := range m.pending[1:] {
		least = min(least, t.due)
	}
	return least - m.now, true
}
