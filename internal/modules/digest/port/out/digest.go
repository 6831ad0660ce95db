package out

import (
	"context"
	"time"

	"readrise/internal/modules/digest/domain"
)

type SummarySource interface {
	Recipients(ctx context.Context) ([]domain.Recipient, error)
	// PagesReadSince sums pages of sessions started at or after since.
	PagesReadSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

type Notifier interface {
	Notify(ctx context.Context, recipient domain.Recipient, msg domain.Message) error
}
