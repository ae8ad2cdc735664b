package momentum

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/momentumhq/momentum/analytics"
	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/plugin"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/store"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/types"
	"github.com/momentumhq/momentum/user"
)

// Credit reasons recorded with point credits and passed to hooks.
const (
	ReasonTaskCompleted    = "task_completed"
	ReasonSessionCompleted = "session_completed"
	ReasonDailyBonus       = "daily_bonus"
	ReasonManual           = "manual"
)

// Engine is the main productivity engine: tasks, focus sessions, mood log,
// and the reward-point ledger over a single store.
type Engine struct {
	store   store.Store
	catalog *reward.Catalog
	plugins *plugin.Registry
	logger  *slog.Logger

	// Configuration
	taskRewardDefault int64
	focusPointsPerMin int64
	minPasswordLen    int
}

// New creates a new Engine instance.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:             s,
		catalog:           reward.DefaultCatalog(),
		plugins:           plugin.NewRegistry(),
		logger:            slog.Default(),
		taskRewardDefault: 10,
		focusPointsPerMin: 1,
		minPasswordLen:    8,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithCatalog replaces the default reward catalog.
func WithCatalog(c *reward.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithTaskRewardDefault sets the points credited for tasks created without
// an explicit reward.
func WithTaskRewardDefault(points int64) Option {
	return func(e *Engine) {
		e.taskRewardDefault = points
	}
}

// WithFocusRate sets the points credited per focused minute.
func WithFocusRate(pointsPerMinute int64) Option {
	return func(e *Engine) {
		e.focusPointsPerMin = pointsPerMinute
	}
}

// Start migrates the store and initializes plugins.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("momentum started",
		"catalog_items", e.catalog.Len(),
		"task_reward_default", e.taskRewardDefault,
		"focus_rate", e.focusPointsPerMin,
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// Store returns the underlying store for direct access.
func (e *Engine) Store() store.Store { return e.store }

// Plugins returns the plugin registry.
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Catalog returns the active reward catalog.
func (e *Engine) Catalog() *reward.Catalog { return e.catalog }

// ──────────────────────────────────────────────────
// Accounts
// ──────────────────────────────────────────────────

// Register creates an account and its reward profile.
func (e *Engine) Register(ctx context.Context, email, name, password string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ValidationError{Field: "email", Message: "must be a valid address"}
	}
	if len(password) < e.minPasswordLen {
		return nil, ValidationError{Field: "password", Message: "too short"}
	}

	u := &user.User{
		Entity: types.NewEntity(),
		ID:     id.NewUserID(),
		Email:  email,
		Name:   strings.TrimSpace(name),
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	if err := e.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	// the ledger also lazily creates profiles, but a fresh account should
	// see a zero balance immediately
	if _, err := e.store.EnsureRewardProfile(ctx, u.ID); err != nil {
		return nil, err
	}

	e.plugins.EmitUserRegistered(ctx, u)
	return u, nil
}

// Authenticate verifies credentials and returns the account.
func (e *Engine) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := e.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetUser retrieves an account by ID.
func (e *Engine) GetUser(ctx context.Context, userID id.UserID) (*user.User, error) {
	return e.store.GetUser(ctx, userID)
}

// ──────────────────────────────────────────────────
// Tasks
// ──────────────────────────────────────────────────

// CreateTask creates a pending task. A zero reward falls back to the
// engine's default.
func (e *Engine) CreateTask(ctx context.Context, userID id.UserID, title, notes string, rewardPoints int64, dueAt *time.Time) (*task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ValidationError{Field: "title", Message: "must not be empty"}
	}
	if rewardPoints < 0 {
		return nil, ValidationError{Field: "reward_points", Message: "must not be negative"}
	}
	if rewardPoints == 0 {
		rewardPoints = e.taskRewardDefault
	}

	t := &task.Task{
		Entity:       types.NewEntity(),
		ID:           id.NewTaskID(),
		UserID:       userID,
		Title:        title,
		Notes:        notes,
		Status:       task.StatusPending,
		RewardPoints: rewardPoints,
		DueAt:        dueAt,
	}
	if err := e.store.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTask retrieves one of the user's tasks.
func (e *Engine) GetTask(ctx context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error) {
	return e.store.GetTask(ctx, userID, taskID)
}

// ListTasks lists the user's tasks.
func (e *Engine) ListTasks(ctx context.Context, userID id.UserID, opts task.ListOpts) ([]*task.Task, error) {
	return e.store.ListTasks(ctx, userID, opts)
}

// UpdateTask applies a partial update to a pending task.
func (e *Engine) UpdateTask(ctx context.Context, userID id.UserID, taskID id.TaskID, patch task.Patch) (*task.Task, error) {
	t, err := e.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if t.IsDone() {
		return nil, ErrTaskAlreadyDone
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ValidationError{Field: "title", Message: "must not be empty"}
		}
		t.Title = title
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.RewardPoints != nil {
		if *patch.RewardPoints < 0 {
			return nil, ValidationError{Field: "reward_points", Message: "must not be negative"}
		}
		t.RewardPoints = *patch.RewardPoints
	}
	if patch.DueAt != nil {
		t.DueAt = patch.DueAt
	}

	if err := e.store.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes one of the user's tasks.
func (e *Engine) DeleteTask(ctx context.Context, userID id.UserID, taskID id.TaskID) error {
	return e.store.DeleteTask(ctx, userID, taskID)
}

// CompleteTask marks a task done and credits its reward points. The store
// rejects a second completion, so the credit happens at most once.
func (e *Engine) CompleteTask(ctx context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, int64, error) {
	t, err := e.store.MarkTaskDone(ctx, userID, taskID)
	if err != nil {
		return nil, 0, err
	}

	balance, err := e.store.CreditPoints(ctx, userID, t.RewardPoints)
	if err != nil {
		return nil, 0, err
	}

	e.plugins.EmitTaskCompleted(ctx, t)
	e.plugins.EmitPointsCredited(ctx, userID, t.RewardPoints, balance, ReasonTaskCompleted)

	e.logger.Info("task completed",
		"user_id", userID,
		"task_id", taskID,
		"points", t.RewardPoints,
		"balance", balance,
	)
	return t, balance, nil
}

// ──────────────────────────────────────────────────
// Focus Sessions
// ──────────────────────────────────────────────────

// StartSession opens a focus session, optionally linked to a task.
func (e *Engine) StartSession(ctx context.Context, userID id.UserID, taskID id.TaskID, plannedMinutes int) (*pomodoro.Session, error) {
	if plannedMinutes <= 0 {
		return nil, ValidationError{Field: "planned_minutes", Message: "must be positive"}
	}
	if !taskID.IsNil() {
		if _, err := e.store.GetTask(ctx, userID, taskID); err != nil {
			return nil, err
		}
	}

	sess := &pomodoro.Session{
		Entity:         types.NewEntity(),
		ID:             id.NewSessionID(),
		UserID:         userID,
		TaskID:         taskID,
		PlannedMinutes: plannedMinutes,
		Status:         pomodoro.StatusRunning,
		StartedAt:      time.Now().UTC(),
	}
	if err := e.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession retrieves one of the user's sessions.
func (e *Engine) GetSession(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*pomodoro.Session, error) {
	return e.store.GetSession(ctx, userID, sessionID)
}

// ListSessions lists the user's sessions.
func (e *Engine) ListSessions(ctx context.Context, userID id.UserID, opts pomodoro.ListOpts) ([]*pomodoro.Session, error) {
	return e.store.ListSessions(ctx, userID, opts)
}

// CompleteSession closes a running session and credits points for the
// focused minutes. Focused minutes are capped at the planned length.
func (e *Engine) CompleteSession(ctx context.Context, userID id.UserID, sessionID id.SessionID, focusMinutes int) (*pomodoro.Session, int64, error) {
	if focusMinutes < 0 {
		return nil, 0, ValidationError{Field: "focus_minutes", Message: "must not be negative"}
	}

	sess, err := e.store.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if focusMinutes == 0 || focusMinutes > sess.PlannedMinutes {
		focusMinutes = sess.PlannedMinutes
	}

	sess, err = e.store.FinishSession(ctx, userID, sessionID, pomodoro.StatusCompleted, focusMinutes)
	if err != nil {
		return nil, 0, err
	}

	points := int64(focusMinutes) * e.focusPointsPerMin
	var balance int64
	if points > 0 {
		balance, err = e.store.CreditPoints(ctx, userID, points)
		if err != nil {
			return nil, 0, err
		}
		e.plugins.EmitPointsCredited(ctx, userID, points, balance, ReasonSessionCompleted)
	}

	e.plugins.EmitSessionCompleted(ctx, sess)

	e.logger.Info("session completed",
		"user_id", userID,
		"session_id", sessionID,
		"focus_minutes", focusMinutes,
		"points", points,
	)
	return sess, balance, nil
}

// AbandonSession closes a running session without crediting points.
func (e *Engine) AbandonSession(ctx context.Context, userID id.UserID, sessionID id.SessionID, focusMinutes int) (*pomodoro.Session, error) {
	if focusMinutes < 0 {
		return nil, ValidationError{Field: "focus_minutes", Message: "must not be negative"}
	}

	sess, err := e.store.FinishSession(ctx, userID, sessionID, pomodoro.StatusAbandoned, focusMinutes)
	if err != nil {
		return nil, err
	}

	e.plugins.EmitSessionCompleted(ctx, sess)
	return sess, nil
}

// ──────────────────────────────────────────────────
// Mood Log
// ──────────────────────────────────────────────────

// LogMood appends a mood entry.
func (e *Engine) LogMood(ctx context.Context, userID id.UserID, m mood.Mood, note string) (*mood.Entry, error) {
	if !m.Valid() {
		return nil, ErrUnknownMood
	}

	entry := &mood.Entry{
		ID:       id.NewMoodID(),
		UserID:   userID,
		Mood:     m,
		Note:     note,
		LoggedAt: time.Now().UTC(),
	}
	if err := e.store.AppendMood(ctx, entry); err != nil {
		return nil, err
	}

	e.plugins.EmitMoodLogged(ctx, entry)
	return entry, nil
}

// ListMoods lists the user's mood entries.
func (e *Engine) ListMoods(ctx context.Context, userID id.UserID, opts mood.ListOpts) ([]*mood.Entry, error) {
	return e.store.ListMoods(ctx, userID, opts)
}

// ──────────────────────────────────────────────────
// Reward Ledger
// ──────────────────────────────────────────────────

// Credit adds points to the user's balance. The profile is created lazily
// on first credit.
func (e *Engine) Credit(ctx context.Context, userID id.UserID, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if reason == "" {
		reason = ReasonManual
	}

	balance, err := e.store.CreditPoints(ctx, userID, amount)
	if err != nil {
		return 0, err
	}

	e.plugins.EmitPointsCredited(ctx, userID, amount, balance, reason)
	return balance, nil
}

// Balance returns the user's current balance, creating the zero-balance
// profile if this is the first ledger access.
func (e *Engine) Balance(ctx context.Context, userID id.UserID) (int64, error) {
	p, err := e.store.EnsureRewardProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return p.Balance, nil
}

// Profile returns the user's full reward profile, creating it if absent.
func (e *Engine) Profile(ctx context.Context, userID id.UserID) (*reward.Profile, error) {
	return e.store.EnsureRewardProfile(ctx, userID)
}

// Purchase debits the item's cost and appends it to the purchase history.
// The check, debit, and append are one atomic store operation; an unknown
// item or an unaffordable cost leaves balance and history untouched.
func (e *Engine) Purchase(ctx context.Context, userID id.UserID, itemName string) (*reward.Receipt, error) {
	item, ok := e.catalog.Lookup(itemName)
	if !ok {
		return nil, ErrItemNotFound
	}

	p := &reward.Purchase{
		ID:        id.NewPurchaseID(),
		UserID:    userID,
		ItemName:  item.Name,
		Cost:      item.Cost,
		Category:  item.Category,
		Timestamp: time.Now().UTC(),
	}

	balance, err := e.store.DebitForPurchase(ctx, userID, p)
	if err != nil {
		if IsLedgerDeclined(err) {
			e.plugins.EmitPurchaseDeclined(ctx, userID, item.Name, item.Cost, balance)
			e.logger.Info("purchase declined",
				"user_id", userID,
				"item", item.Name,
				"cost", item.Cost,
				"balance", balance,
			)
		}
		return nil, err
	}

	receipt := &reward.Receipt{Purchase: *p, Balance: balance}
	e.plugins.EmitPurchaseMade(ctx, receipt)

	e.logger.Info("purchase made",
		"user_id", userID,
		"item", item.Name,
		"cost", item.Cost,
		"balance", balance,
	)
	return receipt, nil
}

// PurchaseHistory lists the user's purchases in chronological order.
func (e *Engine) PurchaseHistory(ctx context.Context, userID id.UserID, opts reward.ListOpts) ([]*reward.Purchase, error) {
	return e.store.ListPurchases(ctx, userID, opts)
}

// ──────────────────────────────────────────────────
// Analytics
// ──────────────────────────────────────────────────

// Summary aggregates the user's activity over a window. Zero bounds mean
// an open-ended window.
func (e *Engine) Summary(ctx context.Context, userID id.UserID, from, to time.Time) (*analytics.Summary, error) {
	return e.store.Summarize(ctx, userID, from, to)
}
