// Package postgres implements the unified store on PostgreSQL via pgx.
//
// The ledger debit runs inside a transaction that locks the profile row
// with SELECT ... FOR UPDATE, so the balance check, debit, and purchase
// insert commit or roll back together.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	momentum "github.com/momentumhq/momentum"
	"github.com/momentumhq/momentum/analytics"
	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	momentumstore "github.com/momentumhq/momentum/store"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/user"
)

// compile-time interface check
var _ momentumstore.Store = (*Store)(nil)

// Store implements store.Store on a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect parses the DSN, configures the pool, and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, storeErr("parse dsn", err)
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, storeErr("create pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, storeErr("ping", err)
	}
	return New(pool), nil
}

// Pool returns the underlying pool for direct access.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Migrate applies the schema statements in order.
func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("momentum/postgres: migration %d: %w: %w", i, momentum.ErrMigrationFailed, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// ==================== Account Store ====================

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO momentum_users (id, email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID.String(), u.Email, u.Name, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return momentum.ErrEmailTaken
		}
		return storeErr("create user", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID id.UserID) (*user.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM momentum_users WHERE id = $1
	`, userID.String())
	return scanUser(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM momentum_users WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		rawID string
		u     user.User
	)
	err := row.Scan(&rawID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, momentum.ErrUserNotFound
		}
		return nil, storeErr("scan user", err)
	}
	u.ID, err = id.ParseUserID(rawID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE momentum_users
		SET email = $2, name = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
	`, u.ID.String(), u.Email, u.Name, u.PasswordHash)
	if err != nil {
		return storeErr("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return momentum.ErrUserNotFound
	}
	return nil
}

func (s *Store) ListActiveUsers(ctx context.Context, since time.Time) ([]id.UserID, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT user_id FROM momentum_sessions
		WHERE status = $1 AND ended_at >= $2
	`, string(pomodoro.StatusCompleted), since)
	if err != nil {
		return nil, storeErr("list active users", err)
	}
	defer rows.Close()

	var out []id.UserID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, storeErr("scan active user", err)
		}
		uid, err := id.ParseUserID(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}

// ==================== Task Store ====================

const taskColumns = `id, user_id, title, notes, status, reward_points, due_at, completed_at, created_at, updated_at`

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO momentum_tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, t.ID.String(), t.UserID.String(), t.Title, t.Notes, string(t.Status),
		t.RewardPoints, t.DueAt, t.CompletedAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return storeErr("create task", err)
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM momentum_tasks
		WHERE id = $1 AND user_id = $2
	`, taskID.String(), userID.String())
	return scanTask(row)
}

func scanTask(row pgx.Row) (*task.Task, error) {
	var (
		rawID, rawUserID, status string
		t                        task.Task
	)
	err := row.Scan(&rawID, &rawUserID, &t.Title, &t.Notes, &status,
		&t.RewardPoints, &t.DueAt, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, momentum.ErrTaskNotFound
		}
		return nil, storeErr("scan task", err)
	}
	if t.ID, err = id.ParseTaskID(rawID); err != nil {
		return nil, err
	}
	if t.UserID, err = id.ParseUserID(rawUserID); err != nil {
		return nil, err
	}
	t.Status = task.Status(status)
	return &t, nil
}

func (s *Store) ListTasks(ctx context.Context, userID id.UserID, opts task.ListOpts) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM momentum_tasks WHERE user_id = $1`
	args := []any{userID.String()}
	if opts.Status != "" {
		args = append(args, string(opts.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	defer rows.Close()

	var out []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE momentum_tasks
		SET title = $3, notes = $4, status = $5, reward_points = $6,
		    due_at = $7, completed_at = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, t.ID.String(), t.UserID.String(), t.Title, t.Notes, string(t.Status),
		t.RewardPoints, t.DueAt, t.CompletedAt)
	if err != nil {
		return storeErr("update task", err)
	}
	if tag.RowsAffected() == 0 {
		return momentum.ErrTaskNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, userID id.UserID, taskID id.TaskID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM momentum_tasks WHERE id = $1 AND user_id = $2
	`, taskID.String(), userID.String())
	if err != nil {
		return storeErr("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return momentum.ErrTaskNotFound
	}
	return nil
}

func (s *Store) MarkTaskDone(ctx context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE momentum_tasks
		SET status = $3, completed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = $4
		RETURNING `+taskColumns+`
	`, taskID.String(), userID.String(), string(task.StatusDone), string(task.StatusPending))

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, momentum.ErrTaskNotFound) {
			// either missing or already done; look again to tell which
			if _, getErr := s.GetTask(ctx, userID, taskID); getErr == nil {
				return nil, momentum.ErrTaskAlreadyDone
			}
			return nil, momentum.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// ==================== Focus Session Store ====================

const sessionColumns = `id, user_id, task_id, planned_minutes, focus_minutes, status, started_at, ended_at, created_at, updated_at`

func (s *Store) CreateSession(ctx context.Context, sess *pomodoro.Session) error {
	var taskID *string
	if !sess.TaskID.IsNil() {
		v := sess.TaskID.String()
		taskID = &v
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO momentum_sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, sess.ID.String(), sess.UserID.String(), taskID, sess.PlannedMinutes,
		sess.FocusMinutes, string(sess.Status), sess.StartedAt, sess.EndedAt,
		sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return storeErr("create session", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*pomodoro.Session, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+` FROM momentum_sessions
		WHERE id = $1 AND user_id = $2
	`, sessionID.String(), userID.String())
	return scanSession(row)
}

func scanSession(row pgx.Row) (*pomodoro.Session, error) {
	var (
		rawID, rawUserID, status string
		rawTaskID                *string
		sess                     pomodoro.Session
	)
	err := row.Scan(&rawID, &rawUserID, &rawTaskID, &sess.PlannedMinutes,
		&sess.FocusMinutes, &status, &sess.StartedAt, &sess.EndedAt,
		&sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, momentum.ErrSessionNotFound
		}
		return nil, storeErr("scan session", err)
	}
	if sess.ID, err = id.ParseSessionID(rawID); err != nil {
		return nil, err
	}
	if sess.UserID, err = id.ParseUserID(rawUserID); err != nil {
		return nil, err
	}
	if rawTaskID != nil {
		if sess.TaskID, err = id.ParseTaskID(*rawTaskID); err != nil {
			return nil, err
		}
	}
	sess.Status = pomodoro.Status(status)
	return &sess, nil
}

func (s *Store) ListSessions(ctx context.Context, userID id.UserID, opts pomodoro.ListOpts) ([]*pomodoro.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM momentum_sessions WHERE user_id = $1`
	args := []any{userID.String()}
	if opts.Status != "" {
		args = append(args, string(opts.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !opts.Since.IsZero() {
		args = append(args, opts.Since)
		query += fmt.Sprintf(" AND started_at >= $%d", len(args))
	}
	query += " ORDER BY started_at"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list sessions", err)
	}
	defer rows.Close()

	var out []*pomodoro.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *Store) FinishSession(ctx context.Context, userID id.UserID, sessionID id.SessionID, status pomodoro.Status, focusMinutes int) (*pomodoro.Session, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE momentum_sessions
		SET status = $3, focus_minutes = $4, ended_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = $5
		RETURNING `+sessionColumns+`
	`, sessionID.String(), userID.String(), string(status), focusMinutes,
		string(pomodoro.StatusRunning))

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, momentum.ErrSessionNotFound) {
			if _, getErr := s.GetSession(ctx, userID, sessionID); getErr == nil {
				return nil, momentum.ErrSessionAlreadyEnded
			}
			return nil, momentum.ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// ==================== Mood Log Store ====================

func (s *Store) AppendMood(ctx context.Context, e *mood.Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO momentum_moods (id, user_id, mood, note, logged_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID.String(), e.UserID.String(), string(e.Mood), e.Note, e.LoggedAt)
	if err != nil {
		return storeErr("append mood", err)
	}
	return nil
}

func (s *Store) ListMoods(ctx context.Context, userID id.UserID, opts mood.ListOpts) ([]*mood.Entry, error) {
	query := `SELECT id, user_id, mood, note, logged_at FROM momentum_moods WHERE user_id = $1`
	args := []any{userID.String()}
	if !opts.Since.IsZero() {
		args = append(args, opts.Since)
		query += fmt.Sprintf(" AND logged_at >= $%d", len(args))
	}
	query += " ORDER BY logged_at"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list moods", err)
	}
	defer rows.Close()

	var out []*mood.Entry
	for rows.Next() {
		var (
			rawID, rawUserID, moodName string
			e                          mood.Entry
		)
		if err := rows.Scan(&rawID, &rawUserID, &moodName, &e.Note, &e.LoggedAt); err != nil {
			return nil, storeErr("scan mood", err)
		}
		if e.ID, err = id.ParseMoodID(rawID); err != nil {
			return nil, err
		}
		if e.UserID, err = id.ParseUserID(rawUserID); err != nil {
			return nil, err
		}
		e.Mood = mood.Mood(moodName)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// ==================== Reward Ledger Store ====================

func (s *Store) EnsureRewardProfile(ctx context.Context, userID id.UserID) (*reward.Profile, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO momentum_reward_profiles (user_id, balance, total_earned, total_spent)
		VALUES ($1, 0, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID.String())
	if err != nil {
		return nil, storeErr("ensure reward profile", err)
	}
	return s.GetRewardProfile(ctx, userID)
}

func (s *Store) GetRewardProfile(ctx context.Context, userID id.UserID) (*reward.Profile, error) {
	p := &reward.Profile{UserID: userID}
	err := s.pool.QueryRow(ctx, `
		SELECT balance, total_earned, total_spent, created_at, updated_at
		FROM momentum_reward_profiles WHERE user_id = $1
	`, userID.String()).Scan(&p.Balance, &p.TotalEarned, &p.TotalSpent, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, momentum.ErrProfileNotFound
		}
		return nil, storeErr("get reward profile", err)
	}
	return p, nil
}

func (s *Store) CreditPoints(ctx context.Context, userID id.UserID, amount int64) (int64, error) {
	var balance int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO momentum_reward_profiles (user_id, balance, total_earned, total_spent)
		VALUES ($1, $2, $2, 0)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = momentum_reward_profiles.balance + $2,
		    total_earned = momentum_reward_profiles.total_earned + $2,
		    updated_at = NOW()
		RETURNING balance
	`, userID.String(), amount).Scan(&balance)
	if err != nil {
		return 0, storeErr("credit points", err)
	}
	return balance, nil
}

func (s *Store) DebitForPurchase(ctx context.Context, userID id.UserID, p *reward.Purchase) (int64, error) {
	if _, err := s.EnsureRewardProfile(ctx, userID); err != nil {
		return 0, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, storeErr("begin debit", err)
	}
	defer tx.Rollback(ctx)

	// lock the profile row so concurrent purchases serialize per user
	var balance int64
	err = tx.QueryRow(ctx, `
		SELECT balance FROM momentum_reward_profiles
		WHERE user_id = $1 FOR UPDATE
	`, userID.String()).Scan(&balance)
	if err != nil {
		return 0, storeErr("lock profile", err)
	}

	if balance < p.Cost {
		return balance, momentum.ErrInsufficientBalance
	}

	err = tx.QueryRow(ctx, `
		UPDATE momentum_reward_profiles
		SET balance = balance - $2, total_spent = total_spent + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`, userID.String(), p.Cost).Scan(&balance)
	if err != nil {
		return 0, storeErr("debit", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO momentum_purchases (id, user_id, item_name, cost, category, ts)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID.String(), userID.String(), p.ItemName, p.Cost, string(p.Category), p.Timestamp)
	if err != nil {
		return 0, storeErr("record purchase", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storeErr("commit debit", err)
	}
	return balance, nil
}

func (s *Store) ListPurchases(ctx context.Context, userID id.UserID, opts reward.ListOpts) ([]*reward.Purchase, error) {
	query := `SELECT id, item_name, cost, category, ts FROM momentum_purchases WHERE user_id = $1`
	args := []any{userID.String()}
	if !opts.Since.IsZero() {
		args = append(args, opts.Since)
		query += fmt.Sprintf(" AND ts >= $%d", len(args))
	}
	query += " ORDER BY seq"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list purchases", err)
	}
	defer rows.Close()

	var out []*reward.Purchase
	for rows.Next() {
		var (
			rawID, category string
			p               reward.Purchase
		)
		if err := rows.Scan(&rawID, &p.ItemName, &p.Cost, &category, &p.Timestamp); err != nil {
			return nil, storeErr("scan purchase", err)
		}
		if p.ID, err = id.ParsePurchaseID(rawID); err != nil {
			return nil, err
		}
		p.UserID = userID
		p.Category = reward.Category(category)
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ==================== Analytics Store ====================

func (s *Store) Summarize(ctx context.Context, userID id.UserID, from, to time.Time) (*analytics.Summary, error) {
	sum := &analytics.Summary{
		From:       from,
		To:         to,
		MoodCounts: make(map[string]int64),
	}
	uid := userID.String()
	lo, hi := windowBounds(from, to)

	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE created_at BETWEEN $2 AND $3),
			COUNT(*) FILTER (WHERE completed_at BETWEEN $2 AND $3)
		FROM momentum_tasks WHERE user_id = $1
	`, uid, lo, hi).Scan(&sum.TasksCreated, &sum.TasksCompleted)
	if err != nil {
		return nil, storeErr("summarize tasks", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(focus_minutes), 0)
		FROM momentum_sessions
		WHERE user_id = $1 AND status = $2 AND ended_at BETWEEN $3 AND $4
	`, uid, string(pomodoro.StatusCompleted), lo, hi).Scan(&sum.SessionsCompleted, &sum.FocusMinutes)
	if err != nil {
		return nil, storeErr("summarize sessions", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT mood, COUNT(*) FROM momentum_moods
		WHERE user_id = $1 AND logged_at BETWEEN $2 AND $3
		GROUP BY mood
	`, uid, lo, hi)
	if err != nil {
		return nil, storeErr("summarize moods", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, storeErr("scan mood count", err)
		}
		sum.MoodCounts[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(total_earned, 0) FROM momentum_reward_profiles WHERE user_id = $1
	`, uid).Scan(&sum.PointsEarned)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeErr("summarize rewards", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(cost), 0) FROM momentum_purchases
		WHERE user_id = $1 AND ts BETWEEN $2 AND $3
	`, uid, lo, hi).Scan(&sum.PointsSpent)
	if err != nil {
		return nil, storeErr("summarize purchases", err)
	}

	return sum, nil
}

// ==================== Helpers ====================

// storeErr wraps an unexpected driver error so callers can match
// momentum.ErrStoreUnavailable.
func storeErr(op string, err error) error {
	return fmt.Errorf("momentum/postgres: %s: %w: %w", op, momentum.ErrStoreUnavailable, err)
}

// windowBounds converts optional zero times into concrete BETWEEN bounds.
func windowBounds(from, to time.Time) (time.Time, time.Time) {
	if from.IsZero() {
		from = time.Unix(0, 0).UTC()
	}
	if to.IsZero() {
		to = time.Now().UTC().Add(24 * time.Hour)
	}
	return from, to
}

// isUniqueViolation checks for SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
