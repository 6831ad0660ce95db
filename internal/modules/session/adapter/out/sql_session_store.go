package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"readrise/internal/modules/session/domain"
	sessionout "readrise/internal/modules/session/port/out"
	"readrise/internal/platform/database"
	apperrors "readrise/internal/platform/errors"
)

type SQLSessionStore struct {
	db *database.DB
}

func NewSQLSessionStore(db *database.DB) sessionout.SessionStore {
	return &SQLSessionStore{db: db}
}

const sessionColumns = `s.id, s.user_book_id, s.started_at, s.ended_at, s.pages_start, s.pages_end,
  s.duration_seconds, s.pages_read, s.pages_per_hour, s.note`

func (s *SQLSessionStore) CloseOpen(ctx context.Context, entryID string, endedAt time.Time) (int, error) {
	const stmt = `UPDATE reading_sessions SET ended_at = ? WHERE user_book_id = ? AND ended_at IS NULL`
	res, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt), database.Millis(endedAt), entryID)
	if err != nil {
		return 0, fmt.Errorf("close open sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("close open sessions: %w", err)
	}
	return int(n), nil
}

func (s *SQLSessionStore) Create(ctx context.Context, session domain.ReadingSession) error {
	const stmt = `INSERT INTO reading_sessions (id, user_book_id, started_at, pages_start) VALUES (?, ?, ?, ?)`
	_, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt),
		session.ID, session.EntryID, database.Millis(session.StartedAt), database.NullInt(session.PagesStart))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLSessionStore) FindOwned(ctx context.Context, userID, sessionID string) (domain.ReadingSession, error) {
	q := `SELECT ` + sessionColumns + `
FROM reading_sessions s JOIN user_books ub ON ub.id = s.user_book_id
WHERE s.id = ? AND ub.user_id = ?`
	session, err := scanSession(s.db.Conn(ctx).QueryRowContext(ctx, s.db.Rebind(q), sessionID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ReadingSession{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.ReadingSession{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

func (s *SQLSessionStore) SaveClosed(ctx context.Context, session domain.ReadingSession) error {
	const stmt = `
UPDATE reading_sessions
SET ended_at = ?, pages_end = ?, duration_seconds = ?, pages_read = ?, pages_per_hour = ?, note = ?
WHERE id = ? AND ended_at IS NULL`
	var duration sql.NullInt64
	if session.DurationSeconds != nil {
		duration = sql.NullInt64{Int64: *session.DurationSeconds, Valid: true}
	}
	res, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt),
		database.NullMillis(session.EndedAt),
		database.NullInt(session.PagesEnd),
		duration,
		database.NullInt(session.PagesRead),
		database.NullFloat(session.PagesPerHour),
		database.NullString(session.Note),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLSessionStore) ListByEntry(ctx context.Context, entryID string, limit int) ([]domain.ReadingSession, error) {
	q := `SELECT ` + sessionColumns + ` FROM reading_sessions s WHERE s.user_book_id = ? ORDER BY s.started_at DESC, s.id LIMIT ?`
	rows, err := s.db.Conn(ctx).QueryContext(ctx, s.db.Rebind(q), entryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	var out []domain.ReadingSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, session)
	}
	return out, rows.Err()
}

func (s *SQLSessionStore) FindOpen(ctx context.Context, entryID string) (domain.ReadingSession, error) {
	q := `SELECT ` + sessionColumns + ` FROM reading_sessions s WHERE s.user_book_id = ? AND s.ended_at IS NULL`
	session, err := scanSession(s.db.Conn(ctx).QueryRowContext(ctx, s.db.Rebind(q), entryID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ReadingSession{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.ReadingSession{}, fmt.Errorf("load open session: %w", err)
	}
	return session, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (domain.ReadingSession, error) {
	var (
		session                     domain.ReadingSession
		startedAt                   int64
		endedAt, duration           sql.NullInt64
		pagesStart, pagesEnd, pages sql.NullInt64
		pph                         sql.NullFloat64
		note                        sql.NullString
	)
	if err := row.Scan(&session.ID, &session.EntryID, &startedAt, &endedAt, &pagesStart, &pagesEnd, &duration, &pages, &pph, &note); err != nil {
		return domain.ReadingSession{}, err
	}
	session.StartedAt = database.FromMillis(startedAt)
	session.EndedAt = database.TimeFromNull(endedAt)
	session.PagesStart = database.IntFromNull(pagesStart)
	session.PagesEnd = database.IntFromNull(pagesEnd)
	if duration.Valid {
		d := duration.Int64
		session.DurationSeconds = &d
	}
	session.PagesRead = database.IntFromNull(pages)
	session.PagesPerHour = database.FloatFromNull(pph)
	session.Note = database.StringFromNull(note)
	return session, nil
}
