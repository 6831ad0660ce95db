package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"readrise/internal/platform/civil"
)

// Timestamps are stored as unix milliseconds (UTC); calendar dates as YYYY-MM-DD text.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS books (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  authors TEXT NOT NULL DEFAULT '[]',
  page_count INTEGER,
  created_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS book_genres (
  book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  genre TEXT NOT NULL,
  PRIMARY KEY (book_id, position)
)`,
	`CREATE TABLE IF NOT EXISTS user_books (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  book_id TEXT NOT NULL REFERENCES books(id) ON DELETE RESTRICT,
  shelf TEXT NOT NULL,
  started_on TEXT,
  finished_on TEXT,
  abandoned_on TEXT,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_user_books_user_shelf ON user_books(user_id, shelf)`,
	`CREATE TABLE IF NOT EXISTS reading_sessions (
  id TEXT PRIMARY KEY,
  user_book_id TEXT NOT NULL REFERENCES user_books(id) ON DELETE CASCADE,
  started_at BIGINT NOT NULL,
  ended_at BIGINT,
  duration_seconds BIGINT,
  pages_start INTEGER,
  pages_end INTEGER,
  pages_read INTEGER,
  pages_per_hour DOUBLE PRECISION,
  note TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_entry_started ON reading_sessions(user_book_id, started_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_open ON reading_sessions(user_book_id) WHERE ended_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS progress_entries (
  id TEXT PRIMARY KEY,
  user_book_id TEXT NOT NULL REFERENCES user_books(id) ON DELETE CASCADE,
  page INTEGER NOT NULL,
  percent DOUBLE PRECISION NOT NULL,
  logged_at BIGINT NOT NULL,
  note TEXT
)`,
	`CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  user_book_id TEXT NOT NULL UNIQUE REFERENCES user_books(id) ON DELETE CASCADE,
  rating DOUBLE PRECISION NOT NULL,
  body TEXT,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS user_goals (
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  year INTEGER NOT NULL,
  goal_type TEXT NOT NULL,
  target INTEGER NOT NULL,
  updated_at BIGINT NOT NULL,
  PRIMARY KEY (user_id, year, goal_type)
)`,
}

func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func Millis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func NullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: Millis(*t), Valid: true}
}

func TimeFromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := FromMillis(v.Int64)
	return &t
}

func NullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func IntFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func NullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func FloatFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func NullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func StringFromNull(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func NullDate(d *civil.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func DateFromNull(v sql.NullString) (*civil.Date, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	d, err := civil.Parse(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
