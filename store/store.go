// Package store defines the unified storage interface for all Momentum
// entities.
package store

import (
	"context"
	"time"

	"github.com/momentumhq/momentum/analytics"
	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/user"
)

// Store is the unified storage interface for all Momentum entities.
// Instead of embedding the per-entity sub-interfaces, all methods are
// declared explicitly to avoid naming conflicts.
type Store interface {
	// Account methods
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, userID id.UserID) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateUser(ctx context.Context, u *user.User) error
	ListActiveUsers(ctx context.Context, since time.Time) ([]id.UserID, error)

	// Task methods
	CreateTask(ctx context.Context, t *task.Task) error
	GetTask(ctx context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error)
	ListTasks(ctx context.Context, userID id.UserID, opts task.ListOpts) ([]*task.Task, error)
	UpdateTask(ctx context.Context, t *task.Task) error
	DeleteTask(ctx context.Context, userID id.UserID, taskID id.TaskID) error
	MarkTaskDone(ctx context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error)

	// Focus session methods
	CreateSession(ctx context.Context, s *pomodoro.Session) error
	GetSession(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*pomodoro.Session, error)
	ListSessions(ctx context.Context, userID id.UserID, opts pomodoro.ListOpts) ([]*pomodoro.Session, error)
	FinishSession(ctx context.Context, userID id.UserID, sessionID id.SessionID, status pomodoro.Status, focusMinutes int) (*pomodoro.Session, error)

	// Mood log methods
	AppendMood(ctx context.Context, e *mood.Entry) error
	ListMoods(ctx context.Context, userID id.UserID, opts mood.ListOpts) ([]*mood.Entry, error)

	// Reward ledger methods. EnsureProfile is an explicit upsert-with-default;
	// Credit and DebitForPurchase must be atomic per user (see reward.Store).
	EnsureRewardProfile(ctx context.Context, userID id.UserID) (*reward.Profile, error)
	GetRewardProfile(ctx context.Context, userID id.UserID) (*reward.Profile, error)
	CreditPoints(ctx context.Context, userID id.UserID, amount int64) (int64, error)
	DebitForPurchase(ctx context.Context, userID id.UserID, p *reward.Purchase) (int64, error)
	ListPurchases(ctx context.Context, userID id.UserID, opts reward.ListOpts) ([]*reward.Purchase, error)

	// Analytics methods (read-only)
	Summarize(ctx context.Context, userID id.UserID, from, to time.Time) (*analytics.Summary, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
