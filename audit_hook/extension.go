// Package audithook bridges Momentum lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit sink. Callers inject a RecorderFunc adapter at
// wiring time; SlogRecorder is a ready-made sink for structured logs.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/plugin"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/user"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin             = (*Extension)(nil)
	_ plugin.OnUserRegistered   = (*Extension)(nil)
	_ plugin.OnTaskCompleted    = (*Extension)(nil)
	_ plugin.OnSessionCompleted = (*Extension)(nil)
	_ plugin.OnMoodLogged       = (*Extension)(nil)
	_ plugin.OnPointsCredited   = (*Extension)(nil)
	_ plugin.OnPurchaseMade     = (*Extension)(nil)
	_ plugin.OnPurchaseDeclined = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	UserID     string         `json:"user_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// SlogRecorder writes audit events to a structured logger.
func SlogRecorder(logger *slog.Logger) Recorder {
	return RecorderFunc(func(ctx context.Context, event *AuditEvent) error {
		logger.InfoContext(ctx, "audit",
			"action", event.Action,
			"resource", event.Resource,
			"resource_id", event.ResourceID,
			"user_id", event.UserID,
			"outcome", event.Outcome,
			"severity", event.Severity,
			"metadata", event.Metadata,
		)
		return nil
	})
}

// Extension bridges Momentum lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Account hooks
// ──────────────────────────────────────────────────

// OnUserRegistered implements plugin.OnUserRegistered.
func (e *Extension) OnUserRegistered(ctx context.Context, u *user.User) error {
	return e.record(ctx, ActionUserRegistered, SeverityInfo, OutcomeSuccess,
		ResourceAccount, u.ID.String(), u.ID, CategoryAccount,
		"email", u.Email,
	)
}

// ──────────────────────────────────────────────────
// Productivity hooks
// ──────────────────────────────────────────────────

// OnTaskCompleted implements plugin.OnTaskCompleted.
func (e *Extension) OnTaskCompleted(ctx context.Context, t *task.Task) error {
	return e.record(ctx, ActionTaskCompleted, SeverityInfo, OutcomeSuccess,
		ResourceTask, t.ID.String(), t.UserID, CategoryProductivity,
		"title", t.Title,
		"reward_points", t.RewardPoints,
	)
}

// OnSessionCompleted implements plugin.OnSessionCompleted.
func (e *Extension) OnSessionCompleted(ctx context.Context, s *pomodoro.Session) error {
	return e.record(ctx, ActionSessionCompleted, SeverityInfo, OutcomeSuccess,
		ResourceSession, s.ID.String(), s.UserID, CategoryProductivity,
		"status", string(s.Status),
		"focus_minutes", s.FocusMinutes,
	)
}

// OnMoodLogged implements plugin.OnMoodLogged.
func (e *Extension) OnMoodLogged(ctx context.Context, entry *mood.Entry) error {
	return e.record(ctx, ActionMoodLogged, SeverityInfo, OutcomeSuccess,
		ResourceMood, entry.ID.String(), entry.UserID, CategoryProductivity,
		"mood", string(entry.Mood),
	)
}

// ──────────────────────────────────────────────────
// Ledger hooks
// ──────────────────────────────────────────────────

// OnPointsCredited implements plugin.OnPointsCredited.
func (e *Extension) OnPointsCredited(ctx context.Context, userID id.UserID, amount, balance int64, reason string) error {
	return e.record(ctx, ActionPointsCredited, SeverityInfo, OutcomeSuccess,
		ResourceProfile, userID.String(), userID, CategoryLedger,
		"amount", amount,
		"balance", balance,
		"reason", reason,
	)
}

// OnPurchaseMade implements plugin.OnPurchaseMade.
func (e *Extension) OnPurchaseMade(ctx context.Context, r *reward.Receipt) error {
	return e.record(ctx, ActionPurchaseMade, SeverityInfo, OutcomeSuccess,
		ResourcePurchase, r.Purchase.ID.String(), r.Purchase.UserID, CategoryLedger,
		"item", r.Purchase.ItemName,
		"cost", r.Purchase.Cost,
		"balance", r.Balance,
	)
}

// OnPurchaseDeclined implements plugin.OnPurchaseDeclined.
func (e *Extension) OnPurchaseDeclined(ctx context.Context, userID id.UserID, itemName string, cost, balance int64) error {
	return e.record(ctx, ActionPurchaseDeclined, SeverityWarning, OutcomeFailure,
		ResourcePurchase, "", userID, CategoryLedger,
		"item", itemName,
		"cost", cost,
		"balance", balance,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID string,
	userID id.UserID,
	category string,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		UserID:     userID.String(),
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
