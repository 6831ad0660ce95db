package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	statsout "readrise/internal/modules/stats/port/out"
	"readrise/internal/platform/civil"
	"readrise/internal/platform/database"
)

type SQLQueries struct {
	db *database.DB
}

func NewSQLQueries(db *database.DB) statsout.Queries {
	return &SQLQueries{db: db}
}

func (q *SQLQueries) CountFinishedBetween(ctx context.Context, userID string, from, to civil.Date) (int, error) {
	const stmt = `
SELECT COUNT(*) FROM user_books
WHERE user_id = ? AND shelf = 'finished' AND finished_on >= ? AND finished_on < ?`
	var n int
	if err := q.db.Conn(ctx).QueryRowContext(ctx, q.db.Rebind(stmt), userID, from.String(), to.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count finished: %w", err)
	}
	return n, nil
}

func (q *SQLQueries) SumPagesRead(ctx context.Context, userID string, since *time.Time) (int64, error) {
	stmt := `
SELECT COALESCE(SUM(s.pages_read), 0)
FROM reading_sessions s JOIN user_books ub ON ub.id = s.user_book_id
WHERE ub.user_id = ? AND s.pages_read IS NOT NULL`
	args := []any{userID}
	if since != nil {
		stmt += ` AND s.started_at >= ?`
		args = append(args, database.Millis(*since))
	}
	var total int64
	if err := q.db.Conn(ctx).QueryRowContext(ctx, q.db.Rebind(stmt), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum pages read: %w", err)
	}
	return total, nil
}

func (q *SQLQueries) SumDurationSeconds(ctx context.Context, userID string) (int64, error) {
	const stmt = `
SELECT COALESCE(SUM(s.duration_seconds), 0)
FROM reading_sessions s JOIN user_books ub ON ub.id = s.user_book_id
WHERE ub.user_id = ? AND s.duration_seconds IS NOT NULL`
	var total int64
	if err := q.db.Conn(ctx).QueryRowContext(ctx, q.db.Rebind(stmt), userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum duration: %w", err)
	}
	return total, nil
}

func (q *SQLQueries) AveragePagesPerHour(ctx context.Context, userID string) (*float64, error) {
	const stmt = `
SELECT AVG(s.pages_per_hour)
FROM reading_sessions s JOIN user_books ub ON ub.id = s.user_book_id
WHERE ub.user_id = ? AND s.pages_per_hour IS NOT NULL`
	var avg sql.NullFloat64
	if err := q.db.Conn(ctx).QueryRowContext(ctx, q.db.Rebind(stmt), userID).Scan(&avg); err != nil {
		return nil, fmt.Errorf("average pages per hour: %w", err)
	}
	return database.FloatFromNull(avg), nil
}

func (q *SQLQueries) SessionDays(ctx context.Context, userID string, limit int) ([]civil.Date, error) {
	stmt := `
SELECT DISTINCT ` + q.db.Dialect.DayOfMillis("s.started_at") + ` AS day
FROM reading_sessions s JOIN user_books ub ON ub.id = s.user_book_id
WHERE ub.user_id = ? AND s.ended_at IS NOT NULL
ORDER BY day DESC
LIMIT ?`
	return q.dates(ctx, "session days", stmt, userID, limit)
}

func (q *SQLQueries) FinishedGenres(ctx context.Context, userID string) ([]string, error) {
	const stmt = `
SELECT g.genre
FROM book_genres g JOIN user_books ub ON ub.book_id = g.book_id
WHERE ub.user_id = ? AND ub.shelf = 'finished'`
	rows, err := q.db.Conn(ctx).QueryContext(ctx, q.db.Rebind(stmt), userID)
	if err != nil {
		return nil, fmt.Errorf("finished genres: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		out = append(out, genre)
	}
	return out, rows.Err()
}

func (q *SQLQueries) FinishedDatesBetween(ctx context.Context, userID string, from, to civil.Date) ([]civil.Date, error) {
	const stmt = `
SELECT finished_on FROM user_books
WHERE user_id = ? AND shelf = 'finished' AND finished_on >= ? AND finished_on < ?`
	return q.dates(ctx, "finished dates", stmt, userID, from.String(), to.String())
}

func (q *SQLQueries) dates(ctx context.Context, what, stmt string, args ...any) ([]civil.Date, error) {
	rows, err := q.db.Conn(ctx).QueryContext(ctx, q.db.Rebind(stmt), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()
	var out []civil.Date
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		d, err := civil.Parse(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
