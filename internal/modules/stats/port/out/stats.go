package out

import (
	"context"
	"time"

	"readrise/internal/platform/civil"
)

// Queries is the read-only surface the assembler needs from storage.
// Date bounds are half-open: from inclusive, to exclusive.
type Queries interface {
	CountFinishedBetween(ctx context.Context, userID string, from, to civil.Date) (int, error)
	// SumPagesRead totals non-null pages read; since restricts to sessions started at or after it.
	SumPagesRead(ctx context.Context, userID string, since *time.Time) (int64, error)
	SumDurationSeconds(ctx context.Context, userID string) (int64, error)
	// AveragePagesPerHour is nil when no session carries a speed.
	AveragePagesPerHour(ctx context.Context, userID string) (*float64, error)
	// SessionDays lists distinct UTC start days of closed sessions, most recent first.
	SessionDays(ctx context.Context, userID string, limit int) ([]civil.Date, error)
	FinishedGenres(ctx context.Context, userID string) ([]string, error)
	FinishedDatesBetween(ctx context.Context, userID string, from, to civil.Date) ([]civil.Date, error)
}
