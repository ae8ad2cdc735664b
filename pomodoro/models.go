// Package pomodoro defines the focus-session domain.
package pomodoro

import (
	"time"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/types"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Session is one Pomodoro focus session. Completing a session credits
// points proportional to the focused minutes.
type Session struct {
	types.Entity
	ID             id.SessionID `json:"id"`
	UserID         id.UserID    `json:"user_id"`
	TaskID         id.TaskID    `json:"task_id,omitempty"` // optional link to a task
	PlannedMinutes int          `json:"planned_minutes"`
	FocusMinutes   int          `json:"focus_minutes"`
	Status         Status       `json:"status"`
	StartedAt      time.Time    `json:"started_at"`
	EndedAt        *time.Time   `json:"ended_at,omitempty"`
}

// IsOpen reports whether the session is still running.
func (s *Session) IsOpen() bool { return s.Status == StatusRunning }

// ListOpts filters session listings.
type ListOpts struct {
	Status Status
	Since  time.Time
	Limit  int
	Offset int
}
