package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"readrise/internal/modules/library/domain"
	libraryout "readrise/internal/modules/library/port/out"
	"readrise/internal/platform/database"
	apperrors "readrise/internal/platform/errors"
)

type SQLProgressStore struct {
	db *database.DB
}

func NewSQLProgressStore(db *database.DB) libraryout.ProgressStore {
	return &SQLProgressStore{db: db}
}

func (s *SQLProgressStore) Create(ctx context.Context, p domain.Progress) error {
	const stmt = `INSERT INTO progress_entries (id, user_book_id, page, percent, logged_at, note) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt), p.ID, p.EntryID, p.Page, p.Percent, database.Millis(p.LoggedAt), database.NullString(p.Note)); err != nil {
		return fmt.Errorf("insert progress: %w", err)
	}
	return nil
}

func (s *SQLProgressStore) ListByEntry(ctx context.Context, entryID string, limit int) ([]domain.Progress, error) {
	const q = `SELECT id, user_book_id, page, percent, logged_at, note FROM progress_entries WHERE user_book_id = ? ORDER BY logged_at DESC, id LIMIT ?`
	rows, err := s.db.Conn(ctx).QueryContext(ctx, s.db.Rebind(q), entryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()
	var out []domain.Progress
	for rows.Next() {
		var (
			p        domain.Progress
			loggedAt int64
			note     sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.EntryID, &p.Page, &p.Percent, &loggedAt, &note); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		p.LoggedAt = database.FromMillis(loggedAt)
		p.Note = database.StringFromNull(note)
		out = append(out, p)
	}
	return out, rows.Err()
}

type SQLGoalStore struct {
	db *database.DB
}

func NewSQLGoalStore(db *database.DB) libraryout.GoalStore {
	return &SQLGoalStore{db: db}
}

func (s *SQLGoalStore) Upsert(ctx context.Context, g domain.Goal) error {
	const stmt = `
INSERT INTO user_goals (user_id, year, goal_type, target, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, year, goal_type) DO UPDATE SET target = excluded.target, updated_at = excluded.updated_at`
	if _, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt), g.UserID, g.Year, string(g.Type), g.Target, database.Millis(g.UpdatedAt)); err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func (s *SQLGoalStore) Find(ctx context.Context, userID string, year int, goalType domain.GoalType) (domain.Goal, error) {
	const q = `SELECT target, updated_at FROM user_goals WHERE user_id = ? AND year = ? AND goal_type = ?`
	g := domain.Goal{UserID: userID, Year: year, Type: goalType}
	var updatedAt int64
	err := s.db.Conn(ctx).QueryRowContext(ctx, s.db.Rebind(q), userID, year, string(goalType)).Scan(&g.Target, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Goal{}, fmt.Errorf("load goal: %w", err)
	}
	g.UpdatedAt = database.FromMillis(updatedAt)
	return g, nil
}
