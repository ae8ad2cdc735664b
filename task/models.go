// Package task defines the task-tracking domain.
package task

import (
	"time"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/types"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Task is one tracked to-do item. Completing a task credits its
// RewardPoints to the owner's reward profile.
type Task struct {
	types.Entity
	ID           id.TaskID  `json:"id"`
	UserID       id.UserID  `json:"user_id"`
	Title        string     `json:"title"`
	Notes        string     `json:"notes,omitempty"`
	Status       Status     `json:"status"`
	RewardPoints int64      `json:"reward_points"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// IsDone reports whether the task has been completed.
func (t *Task) IsDone() bool { return t.Status == StatusDone }

// Patch carries a partial update. Nil fields are left unchanged.
type Patch struct {
	Title        *string    `json:"title,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	RewardPoints *int64     `json:"reward_points,omitempty"`
	DueAt        *time.Time `json:"due_at,omitempty"`
}

// ListOpts filters task listings.
type ListOpts struct {
	Status Status
	Limit  int
	Offset int
}
