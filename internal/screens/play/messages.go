package play

import "time"

// tickMsg is sent every second while a play screen is open. SessionID ties
// the tick chain to one screen so a stale chain dies when it is replaced.
type tickMsg struct {
	SessionID string
	At        time.Time
}
