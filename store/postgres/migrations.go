package postgres

// Schema statements applied in order by Migrate. Statements are idempotent
// so Migrate can run on every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS momentum_users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		password_hash BYTEA,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS momentum_users_email_idx
		ON momentum_users (LOWER(email))`,

	`CREATE TABLE IF NOT EXISTS momentum_tasks (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL REFERENCES momentum_users(id),
		title         TEXT NOT NULL,
		notes         TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		reward_points BIGINT NOT NULL DEFAULT 0,
		due_at        TIMESTAMPTZ,
		completed_at  TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS momentum_tasks_user_status_idx
		ON momentum_tasks (user_id, status)`,
	`CREATE INDEX IF NOT EXISTS momentum_tasks_user_created_idx
		ON momentum_tasks (user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS momentum_sessions (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES momentum_users(id),
		task_id         TEXT,
		planned_minutes INTEGER NOT NULL,
		focus_minutes   INTEGER NOT NULL DEFAULT 0,
		status          TEXT NOT NULL,
		started_at      TIMESTAMPTZ NOT NULL,
		ended_at        TIMESTAMPTZ,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS momentum_sessions_user_started_idx
		ON momentum_sessions (user_id, started_at)`,
	`CREATE INDEX IF NOT EXISTS momentum_sessions_status_ended_idx
		ON momentum_sessions (status, ended_at)`,

	`CREATE TABLE IF NOT EXISTS momentum_moods (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL REFERENCES momentum_users(id),
		mood      TEXT NOT NULL,
		note      TEXT NOT NULL DEFAULT '',
		logged_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS momentum_moods_user_logged_idx
		ON momentum_moods (user_id, logged_at)`,

	`CREATE TABLE IF NOT EXISTS momentum_reward_profiles (
		user_id      TEXT PRIMARY KEY,
		balance      BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		total_earned BIGINT NOT NULL DEFAULT 0,
		total_spent  BIGINT NOT NULL DEFAULT 0,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS momentum_purchases (
		seq       BIGSERIAL PRIMARY KEY,
		id        TEXT NOT NULL UNIQUE,
		user_id   TEXT NOT NULL REFERENCES momentum_reward_profiles(user_id),
		item_name TEXT NOT NULL,
		cost      BIGINT NOT NULL,
		category  TEXT NOT NULL DEFAULT '',
		ts        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS momentum_purchases_user_seq_idx
		ON momentum_purchases (user_id, seq)`,
}
