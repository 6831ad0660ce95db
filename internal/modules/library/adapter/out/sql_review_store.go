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

type SQLReviewStore struct {
	db *database.DB
}

func NewSQLReviewStore(db *database.DB) libraryout.ReviewStore {
	return &SQLReviewStore{db: db}
}

// Upsert keeps one review per entry; a second write replaces rating and body
// but keeps the original id and created_at.
func (s *SQLReviewStore) Upsert(ctx context.Context, r domain.Review) (domain.Review, error) {
	const stmt = `
INSERT INTO reviews (id, user_book_id, rating, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (user_book_id) DO UPDATE SET rating = excluded.rating, body = excluded.body, updated_at = excluded.updated_at`
	_, err := s.db.Conn(ctx).ExecContext(ctx, s.db.Rebind(stmt),
		r.ID, r.EntryID, r.Rating, database.NullString(r.Body), database.Millis(r.CreatedAt), database.Millis(r.UpdatedAt),
	)
	if err != nil {
		return domain.Review{}, fmt.Errorf("upsert review: %w", err)
	}
	return s.FindByEntry(ctx, r.EntryID)
}

func (s *SQLReviewStore) FindByEntry(ctx context.Context, entryID string) (domain.Review, error) {
	const q = `SELECT id, user_book_id, rating, body, created_at, updated_at FROM reviews WHERE user_book_id = ?`
	var (
		r                    domain.Review
		body                 sql.NullString
		createdAt, updatedAt int64
	)
	err := s.db.Conn(ctx).QueryRowContext(ctx, s.db.Rebind(q), entryID).Scan(&r.ID, &r.EntryID, &r.Rating, &body, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Review{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Review{}, fmt.Errorf("load review: %w", err)
	}
	r.Body = database.StringFromNull(body)
	r.CreatedAt = database.FromMillis(createdAt)
	r.UpdatedAt = database.FromMillis(updatedAt)
	return r, nil
}
