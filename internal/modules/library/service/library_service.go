package service

import (
	"context"
	"fmt"
	"strings"

	"readrise/internal/modules/library/domain"
	libraryout "readrise/internal/modules/library/port/out"
	"readrise/internal/platform/civil"
	"readrise/internal/platform/clock"
	"readrise/internal/platform/id"
	"readrise/internal/platform/tx"
)

type Stores struct {
	Users    libraryout.UserStore
	Books    libraryout.BookStore
	Entries  libraryout.EntryStore
	Progress libraryout.ProgressStore
	Goals    libraryout.GoalStore
	Reviews  libraryout.ReviewStore
}

type LibraryService struct {
	clock  clock.Clock
	idGen  id.Generator
	tx     tx.Manager
	stores Stores
}

func NewLibraryService(clock clock.Clock, idGen id.Generator, txm tx.Manager, stores Stores) *LibraryService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &LibraryService{clock: clock, idGen: idGen, tx: txm, stores: stores}
}

func (s *LibraryService) Today() civil.Date {
	return clock.Today(s.clock)
}

// AddBook stores a new book and places it on the user's shelf in one transaction.
func (s *LibraryService) AddBook(ctx context.Context, userID string, book domain.Book, shelf domain.Shelf) (domain.Entry, error) {
	now := s.clock.Now()
	book.ID = s.idGen.New()
	book.Title = strings.TrimSpace(book.Title)
	book.Authors = compact(book.Authors)
	book.Genres = compact(book.Genres)
	book.CreatedAt = now
	if shelf == "" {
		shelf = domain.ShelfWantToRead
	}
	entry, err := domain.NewEntry(s.idGen.New(), userID, book, shelf, now)
	if err != nil {
		return domain.Entry{}, err
	}

	err = s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.stores.Users.Ensure(ctx, domain.User{ID: userID, DisplayName: userID, CreatedAt: now}); err != nil {
			return err
		}
		if err := s.stores.Books.Create(ctx, book); err != nil {
			return err
		}
		return s.stores.Entries.Create(ctx, entry)
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *LibraryService) ListEntries(ctx context.Context, userID string, shelf *domain.Shelf) ([]domain.Entry, error) {
	return s.stores.Entries.List(ctx, userID, shelf)
}

func (s *LibraryService) GetEntry(ctx context.Context, userID, entryID string) (domain.Entry, error) {
	return s.stores.Entries.FindOwned(ctx, userID, entryID)
}

func (s *LibraryService) MoveShelf(ctx context.Context, userID, entryID string, shelf domain.Shelf, on *civil.Date) (domain.Entry, error) {
	if err := shelf.Validate(); err != nil {
		return domain.Entry{}, err
	}
	var entry domain.Entry
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.stores.Entries.FindOwned(ctx, userID, entryID)
		if err != nil {
			return err
		}
		day := s.Today()
		if on != nil {
			day = *on
		}
		entry.MoveTo(shelf, day, s.clock.Now())
		return s.stores.Entries.UpdateShelf(ctx, entry)
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// LogProgress records a page position; the first log on a want-to-read entry starts it.
func (s *LibraryService) LogProgress(ctx context.Context, userID, entryID string, page int, pageCount *int, note *string) (domain.Progress, domain.Entry, bool, error) {
	if page < 0 {
		return domain.Progress{}, domain.Entry{}, false, fmt.Errorf("page must be non-negative")
	}
	var (
		progress domain.Progress
		entry    domain.Entry
		started  bool
	)
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.stores.Entries.FindOwned(ctx, userID, entryID)
		if err != nil {
			return err
		}
		if pageCount == nil {
			pageCount = entry.Book.PageCount
		}
		now := s.clock.Now()
		progress = domain.Progress{
			ID:       s.idGen.New(),
			EntryID:  entry.ID,
			Page:     page,
			Percent:  domain.ProgressPercent(page, pageCount),
			LoggedAt: now,
			Note:     note,
		}
		if err := s.stores.Progress.Create(ctx, progress); err != nil {
			return err
		}
		if started = entry.StartOnProgress(civil.DateOf(now), now); started {
			return s.stores.Entries.UpdateShelf(ctx, entry)
		}
		return nil
	})
	if err != nil {
		return domain.Progress{}, domain.Entry{}, false, err
	}
	return progress, entry, started, nil
}

func (s *LibraryService) ListProgress(ctx context.Context, userID, entryID string, limit int) ([]domain.Progress, error) {
	if _, err := s.stores.Entries.FindOwned(ctx, userID, entryID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > domain.ProgressListLimit {
		limit = domain.ProgressListLimit
	}
	return s.stores.Progress.ListByEntry(ctx, entryID, limit)
}

func (s *LibraryService) SetGoal(ctx context.Context, userID string, year, target int) (domain.Goal, error) {
	now := s.clock.Now()
	if year == 0 {
		year = s.Today().Year
	}
	goal := domain.Goal{UserID: userID, Year: year, Type: domain.GoalBookCount, Target: target, UpdatedAt: now}
	if err := goal.Validate(); err != nil {
		return domain.Goal{}, err
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.stores.Users.Ensure(ctx, domain.User{ID: userID, DisplayName: userID, CreatedAt: now}); err != nil {
			return err
		}
		return s.stores.Goals.Upsert(ctx, goal)
	})
	if err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

func (s *LibraryService) GetGoal(ctx context.Context, userID string, year int) (domain.Goal, error) {
	if year == 0 {
		year = s.Today().Year
	}
	return s.stores.Goals.Find(ctx, userID, year, domain.GoalBookCount)
}

// RemoveEntry deletes an owned entry; the store cascades to its sessions, progress and review.
func (s *LibraryService) RemoveEntry(ctx context.Context, userID, entryID string) (domain.Entry, error) {
	var entry domain.Entry
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		if entry, err = s.stores.Entries.FindOwned(ctx, userID, entryID); err != nil {
			return err
		}
		return s.stores.Entries.Delete(ctx, userID, entryID)
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// SetReview creates or replaces the review on an owned entry.
func (s *LibraryService) SetReview(ctx context.Context, userID, entryID string, rating float64, body *string) (domain.Review, error) {
	now := s.clock.Now()
	review := domain.Review{ID: s.idGen.New(), EntryID: entryID, Rating: rating, Body: body, CreatedAt: now, UpdatedAt: now}
	if err := review.Validate(); err != nil {
		return domain.Review{}, err
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if _, err := s.stores.Entries.FindOwned(ctx, userID, entryID); err != nil {
			return err
		}
		var err error
		review, err = s.stores.Reviews.Upsert(ctx, review)
		return err
	})
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

func (s *LibraryService) GetReview(ctx context.Context, userID, entryID string) (domain.Review, error) {
	if _, err := s.stores.Entries.FindOwned(ctx, userID, entryID); err != nil {
		return domain.Review{}, err
	}
	return s.stores.Reviews.FindByEntry(ctx, entryID)
}

func (s *LibraryService) SetDisplayName(ctx context.Context, userID, name string) (domain.User, error) {
	user := domain.User{ID: userID, DisplayName: userID, CreatedAt: s.clock.Now()}
	if err := user.Rename(name); err != nil {
		return domain.User{}, err
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.stores.Users.Ensure(ctx, user); err != nil {
			return err
		}
		return s.stores.Users.UpdateDisplayName(ctx, user)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *LibraryService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	return s.stores.Users.Find(ctx, userID)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
