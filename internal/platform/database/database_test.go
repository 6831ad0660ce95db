package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"readrise/internal/platform/config"
	"readrise/internal/platform/database"
)

func TestRebindRewritesPlaceholdersForPostgresOnly(t *testing.T) {
	t.Parallel()
	q := "SELECT id FROM reading_sessions WHERE user_book_id = ? AND started_at >= ?"
	if got := database.SQLite.Rebind(q); got != q {
		t.Fatalf("sqlite query must be unchanged, got %s", got)
	}
	want := "SELECT id FROM reading_sessions WHERE user_book_id = $1 AND started_at >= $2"
	if got := database.Postgres.Rebind(q); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDialectFor(t *testing.T) {
	t.Parallel()
	if d, err := database.DialectFor(""); err != nil || d != database.SQLite {
		t.Fatalf("empty driver should default to sqlite, got %v %v", d, err)
	}
	if d, err := database.DialectFor("PostgreSQL"); err != nil || d != database.Postgres {
		t.Fatalf("postgresql alias should resolve, got %v %v", d, err)
	}
	if _, err := database.DialectFor("oracle"); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}

func TestOpenSQLiteMigratesAndWithinRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "nested", "readrise.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate must be idempotent: %v", err)
	}

	boom := errors.New("boom")
	err = db.Within(ctx, func(txCtx context.Context) error {
		if _, err := db.Conn(txCtx).ExecContext(txCtx, `INSERT INTO users (id, display_name, created_at) VALUES (?, ?, ?)`, "u-1", "Ada", 1); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("rolled back insert must not persist, got %d rows", count)
	}

	var day string
	if err := db.QueryRowContext(ctx, `SELECT `+db.Dialect.DayOfMillis("?"), int64(1718452800000)).Scan(&day); err != nil {
		t.Fatalf("day expression: %v", err)
	}
	if day != "2024-06-15" {
		t.Fatalf("expected 2024-06-15, got %s", day)
	}
}
