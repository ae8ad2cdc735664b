package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/user"
)

// Registry manages all registered plugins and provides efficient dispatch.
// Interface membership is cached at registration time so emission is a
// plain slice walk.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	onInit             []OnInit
	onShutdown         []OnShutdown
	onUserRegistered   []OnUserRegistered
	onTaskCompleted    []OnTaskCompleted
	onSessionCompleted []OnSessionCompleted
	onMoodLogged       []OnMoodLogged
	onPointsCredited   []OnPointsCredited
	onPurchaseMade     []OnPurchaseMade
	onPurchaseDeclined []OnPurchaseDeclined
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnUserRegistered); ok {
		r.onUserRegistered = append(r.onUserRegistered, v)
	}
	if v, ok := p.(OnTaskCompleted); ok {
		r.onTaskCompleted = append(r.onTaskCompleted, v)
	}
	if v, ok := p.(OnSessionCompleted); ok {
		r.onSessionCompleted = append(r.onSessionCompleted, v)
	}
	if v, ok := p.(OnMoodLogged); ok {
		r.onMoodLogged = append(r.onMoodLogged, v)
	}
	if v, ok := p.(OnPointsCredited); ok {
		r.onPointsCredited = append(r.onPointsCredited, v)
	}
	if v, ok := p.(OnPurchaseMade); ok {
		r.onPurchaseMade = append(r.onPurchaseMade, v)
	}
	if v, ok := p.(OnPurchaseDeclined); ok {
		r.onPurchaseDeclined = append(r.onPurchaseDeclined, v)
	}

	r.logger.Info("plugin registered", "name", p.Name())

	return nil
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine any) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitUserRegistered emits an account created event.
func (r *Registry) EmitUserRegistered(ctx context.Context, u *user.User) {
	r.mu.RLock()
	plugins := r.onUserRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnUserRegistered(ctx, u)
		}); err != nil {
			r.logger.Warn("plugin OnUserRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitTaskCompleted emits a task completed event.
func (r *Registry) EmitTaskCompleted(ctx context.Context, t *task.Task) {
	r.mu.RLock()
	plugins := r.onTaskCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTaskCompleted(ctx, t)
		}); err != nil {
			r.logger.Warn("plugin OnTaskCompleted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSessionCompleted emits a focus session completed event.
func (r *Registry) EmitSessionCompleted(ctx context.Context, s *pomodoro.Session) {
	r.mu.RLock()
	plugins := r.onSessionCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSessionCompleted(ctx, s)
		}); err != nil {
			r.logger.Warn("plugin OnSessionCompleted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitMoodLogged emits a mood logged event.
func (r *Registry) EmitMoodLogged(ctx context.Context, e *mood.Entry) {
	r.mu.RLock()
	plugins := r.onMoodLogged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMoodLogged(ctx, e)
		}); err != nil {
			r.logger.Warn("plugin OnMoodLogged failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPointsCredited emits a points credited event.
func (r *Registry) EmitPointsCredited(ctx context.Context, userID id.UserID, amount, balance int64, reason string) {
	r.mu.RLock()
	plugins := r.onPointsCredited
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPointsCredited(ctx, userID, amount, balance, reason)
		}); err != nil {
			r.logger.Warn("plugin OnPointsCredited failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPurchaseMade emits a purchase committed event.
func (r *Registry) EmitPurchaseMade(ctx context.Context, receipt *reward.Receipt) {
	r.mu.RLock()
	plugins := r.onPurchaseMade
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPurchaseMade(ctx, receipt)
		}); err != nil {
			r.logger.Warn("plugin OnPurchaseMade failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPurchaseDeclined emits a purchase declined event.
func (r *Registry) EmitPurchaseDeclined(ctx context.Context, userID id.UserID, itemName string, cost, balance int64) {
	r.mu.RLock()
	plugins := r.onPurchaseDeclined
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPurchaseDeclined(ctx, userID, itemName, cost, balance)
		}); err != nil {
			r.logger.Warn("plugin OnPurchaseDeclined failed", "plugin", p.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins must never block the request path.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
