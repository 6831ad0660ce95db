package out

import (
	"context"
	"fmt"
	"time"

	"readrise/internal/modules/digest/domain"
	digestout "readrise/internal/modules/digest/port/out"
	"readrise/internal/platform/database"
)

type SQLSummarySource struct {
	db *database.DB
}

func NewSQLSummarySource(db *database.DB) digestout.SummarySource {
	return &SQLSummarySource{db: db}
}

func (s *SQLSummarySource) Recipients(ctx context.Context) ([]domain.Recipient, error) {
	rows, err := s.db.Conn(ctx).QueryContext(ctx, `SELECT id, display_name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []domain.Recipient
	for rows.Next() {
		var r domain.Recipient
		if err := rows.Scan(&r.UserID, &r.DisplayName); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLSummarySource) PagesReadSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	const q = `
SELECT COALESCE(SUM(s.pages_read), 0)
FROM reading_sessions s JOIN user_books ub ON ub.id = s.user_book_id
WHERE ub.user_id = ? AND s.started_at >= ?`
	var total int64
	if err := s.db.Conn(ctx).QueryRowContext(ctx, s.db.Rebind(q), userID, database.Millis(since)).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum weekly pages: %w", err)
	}
	return total, nil
}
