package task

import (
	"context"

	"github.com/momentumhq/momentum/id"
)

// Store is the persistence contract for tasks.
type Store interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, userID id.UserID, taskID id.TaskID) (*Task, error)
	List(ctx context.Context, userID id.UserID, opts ListOpts) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, userID id.UserID, taskID id.TaskID) error

	// MarkDone flips the task to StatusDone and stamps CompletedAt, but only
	// if it is still pending; an already-done task is a reported conflict so
	// completion rewards are credited at most once.
	MarkDone(ctx context.Context, userID id.UserID, taskID id.TaskID) (*Task, error)
}
