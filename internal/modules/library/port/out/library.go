package out

import (
	"context"

	"readrise/internal/modules/library/domain"
)

type UserStore interface {
	Ensure(ctx context.Context, user domain.User) error
	Find(ctx context.Context, userID string) (domain.User, error)
	UpdateDisplayName(ctx context.Context, user domain.User) error
}

type BookStore interface {
	Create(ctx context.Context, book domain.Book) error
}

// EntryStore reads entries scoped to their owner; a foreign or missing entry is apperrors.ErrNotFound.
type EntryStore interface {
	Create(ctx context.Context, entry domain.Entry) error
	FindOwned(ctx context.Context, userID, entryID string) (domain.Entry, error)
	List(ctx context.Context, userID string, shelf *domain.Shelf) ([]domain.Entry, error)
	UpdateShelf(ctx context.Context, entry domain.Entry) error
	// Delete removes the entry with its sessions, progress and review.
	Delete(ctx context.Context, userID, entryID string) error
}

type ProgressStore interface {
	Create(ctx context.Context, progress domain.Progress) error
	ListByEntry(ctx context.Context, entryID string, limit int) ([]domain.Progress, error)
}

type GoalStore interface {
	Upsert(ctx context.Context, goal domain.Goal) error
	Find(ctx context.Context, userID string, year int, goalType domain.GoalType) (domain.Goal, error)
}

type ReviewStore interface {
	Upsert(ctx context.Context, review domain.Review) (domain.Review, error)
	FindByEntry(ctx context.Context, entryID string) (domain.Review, error)
}
