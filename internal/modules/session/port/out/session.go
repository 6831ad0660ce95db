package out

import (
	"context"
	"time"

	"readrise/internal/modules/session/domain"
)

type SessionStore interface {
	// CloseOpen sets ended_at on every open session of the entry, leaving derived fields empty.
	CloseOpen(ctx context.Context, entryID string, endedAt time.Time) (int, error)
	Create(ctx context.Context, session domain.ReadingSession) error
	// FindOwned loads a session whose entry belongs to userID, else apperrors.ErrNotFound.
	FindOwned(ctx context.Context, userID, sessionID string) (domain.ReadingSession, error)
	// SaveClosed persists a close only if the row is still open, else apperrors.ErrNotFound.
	SaveClosed(ctx context.Context, session domain.ReadingSession) error
	ListByEntry(ctx context.Context, entryID string, limit int) ([]domain.ReadingSession, error)
	// FindOpen returns apperrors.ErrNoActiveSession when nothing is open.
	FindOpen(ctx context.Context, entryID string) (domain.ReadingSession, error)
}
