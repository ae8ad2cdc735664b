// Package plugin provides an extensible plugin system for Momentum.
// Plugins can hook into various lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/user"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized. The engine is passed as
// an opaque value to avoid an import cycle with the root package.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine any) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Account hooks
// ──────────────────────────────────────────────────

// OnUserRegistered is called after a new account is created.
type OnUserRegistered interface {
	Plugin
	OnUserRegistered(ctx context.Context, u *user.User) error
}

// ──────────────────────────────────────────────────
// Productivity hooks
// ──────────────────────────────────────────────────

// OnTaskCompleted is called after a task transitions to done.
type OnTaskCompleted interface {
	Plugin
	OnTaskCompleted(ctx context.Context, t *task.Task) error
}

// OnSessionCompleted is called after a focus session ends.
type OnSessionCompleted interface {
	Plugin
	OnSessionCompleted(ctx context.Context, s *pomodoro.Session) error
}

// OnMoodLogged is called after a mood entry is appended.
type OnMoodLogged interface {
	Plugin
	OnMoodLogged(ctx context.Context, e *mood.Entry) error
}

// ──────────────────────────────────────────────────
// Reward ledger hooks
// ──────────────────────────────────────────────────

// OnPointsCredited is called after a successful credit.
type OnPointsCredited interface {
	Plugin
	OnPointsCredited(ctx context.Context, userID id.UserID, amount, balance int64, reason string) error
}

// OnPurchaseMade is called after a successful purchase (debit committed).
type OnPurchaseMade interface {
	Plugin
	OnPurchaseMade(ctx context.Context, r *reward.Receipt) error
}

// OnPurchaseDeclined is called when a purchase fails the balance
// precondition. The decline is a terminal outcome, already reported to the
// caller; hooks observe it for metrics and audit only.
type OnPurchaseDeclined interface {
	Plugin
	OnPurchaseDeclined(ctx context.Context, userID id.UserID, itemName string, cost, balance int64) error
}
