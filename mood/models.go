// Package mood defines the append-only mood log domain.
package mood

import (
	"time"

	"github.com/momentumhq/momentum/id"
)

// Mood is one entry of the fixed mood vocabulary.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodCalm      Mood = "calm"
	MoodFocused   Mood = "focused"
	MoodEnergized Mood = "energized"
	MoodTired     Mood = "tired"
	MoodStressed  Mood = "stressed"
	MoodSad       Mood = "sad"
)

// All lists the accepted mood vocabulary.
var All = []Mood{
	MoodHappy, MoodCalm, MoodFocused, MoodEnergized,
	MoodTired, MoodStressed, MoodSad,
}

// Valid reports whether m is part of the accepted vocabulary.
func (m Mood) Valid() bool {
	for _, known := range All {
		if m == known {
			return true
		}
	}
	return false
}

// Entry is one mood log record. Entries are append-only; they are never
// updated or deleted through this component.
type Entry struct {
	ID       id.MoodID `json:"id"`
	UserID   id.UserID `json:"user_id"`
	Mood     Mood      `json:"mood"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// ListOpts filters mood-log queries.
type ListOpts struct {
	Since  time.Time
	Limit  int
	Offset int
}
