package database

import (
	"context"
	"fmt"
)

// migrations are applied in order at startup. Each statement is idempotent so
// repeated boots are safe without a migration-version table.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		birthdate     TEXT NOT NULL DEFAULT '',
		country       TEXT NOT NULL DEFAULT '',
		city          TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'user',
		total_points  INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS books (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		author      TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		difficulty  TEXT NOT NULL DEFAULT 'beginner',
		cover_url   TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS chapters (
		id          TEXT PRIMARY KEY,
		book_id     TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		content     TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (book_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS missions (
		id          TEXT PRIMARY KEY,
		chapter_id  TEXT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		mode        TEXT NOT NULL,
		difficulty  TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		data        JSONB NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (chapter_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS mission_progress (
		user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id       TEXT NOT NULL,
		chapter_id    TEXT NOT NULL,
		mission_id    TEXT NOT NULL,
		completed     BOOLEAN NOT NULL DEFAULT FALSE,
		best_score    INTEGER NOT NULL DEFAULT 0,
		current_score INTEGER NOT NULL DEFAULT 0,
		attempts      INTEGER NOT NULL DEFAULT 0,
		mode          TEXT NOT NULL DEFAULT '',
		points        INTEGER NOT NULL DEFAULT 0,
		completed_at  TIMESTAMPTZ,
		unlocks_next  BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (user_id, mission_id)
	)`,

	`CREATE TABLE IF NOT EXISTS chapter_progress (
		user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id            TEXT NOT NULL,
		chapter_id         TEXT NOT NULL,
		missions_completed TEXT[] NOT NULL DEFAULT '{}',
		last_access        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, chapter_id)
	)`,

	`CREATE TABLE IF NOT EXISTS book_progress (
		user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id         TEXT NOT NULL,
		current_chapter TEXT NOT NULL DEFAULT '',
		current_mission TEXT NOT NULL DEFAULT '',
		last_access     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, book_id)
	)`,

	`CREATE TABLE IF NOT EXISTS achievements (
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		points      INTEGER NOT NULL DEFAULT 0,
		unlocked_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chapters_book ON chapters(book_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_missions_chapter ON missions(chapter_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_mission_progress_chapter ON mission_progress(user_id, chapter_id)`,
	`CREATE INDEX IF NOT EXISTS idx_users_points ON users(total_points DESC)`,
}

// Migrate applies the schema to the database
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
