package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	libraryout "readrise/internal/modules/library/adapter/out"
	"readrise/internal/modules/library/dto"
	libraryin "readrise/internal/modules/library/port/in"
	"readrise/internal/modules/library/service"
	"readrise/internal/modules/library/usecase"
	"readrise/internal/platform/civil"
	"readrise/internal/platform/clock"
	"readrise/internal/platform/config"
	"readrise/internal/platform/database"
	apperrors "readrise/internal/platform/errors"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

func newLibrary(t *testing.T, c clock.Clock) libraryin.Usecase {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "readrise.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	svc := service.NewLibraryService(c, &seqID{}, db, service.Stores{
		Users:    libraryout.NewSQLUserStore(db),
		Books:    libraryout.NewSQLBookStore(db),
		Entries:  libraryout.NewSQLEntryStore(db),
		Progress: libraryout.NewSQLProgressStore(db),
		Goals:    libraryout.NewSQLGoalStore(db),
		Reviews:  libraryout.NewSQLReviewStore(db),
	})
	return usecase.NewInteractor(svc, zaptest.NewLogger(t))
}

func intPtr(v int) *int { return &v }

func TestAddListGetAndMoveShelf(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newLibrary(t, clock.Fixed(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)))

	added, err := uc.AddBook(ctx, dto.AddBookInput{
		UserID:    "u-1",
		Title:     "  The Left Hand of Darkness ",
		Authors:   []string{"Ursula K. Le Guin"},
		Genres:    []string{"Fiction / Science Fiction", " ", "Fiction / Classics"},
		PageCount: intPtr(304),
		Shelf:     "reading",
	})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	if added.Title != "The Left Hand of Darkness" || added.Shelf != "reading" || added.StartedOn == nil {
		t.Fatalf("unexpected entry %+v", added)
	}
	if _, err := uc.AddBook(ctx, dto.AddBookInput{UserID: "u-1", Title: "Piranesi"}); err != nil {
		t.Fatalf("add second book: %v", err)
	}

	all, err := uc.ListEntries(ctx, dto.ListEntriesInput{UserID: "u-1"})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	reading, err := uc.ListEntries(ctx, dto.ListEntriesInput{UserID: "u-1", Shelf: "reading"})
	if err != nil {
		t.Fatalf("list reading: %v", err)
	}
	if len(reading) != 1 || reading[0].ID != added.ID {
		t.Fatalf("shelf filter failed: %+v", reading)
	}

	got, err := uc.GetEntry(ctx, dto.GetEntryInput{UserID: "u-1", EntryID: added.ID})
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "Fiction / Science Fiction" || len(got.Authors) != 1 || *got.PageCount != 304 {
		t.Fatalf("book details not round-tripped: %+v", got)
	}

	if _, err := uc.GetEntry(ctx, dto.GetEntryInput{UserID: "u-2", EntryID: added.ID}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign entry must be not found, got %v", err)
	}

	on := civil.MustParse("2024-06-10")
	moved, err := uc.MoveShelf(ctx, dto.MoveShelfInput{UserID: "u-1", EntryID: added.ID, Shelf: "finished", On: &on})
	if err != nil {
		t.Fatalf("move shelf: %v", err)
	}
	if moved.Shelf != "finished" || moved.FinishedOn == nil || *moved.FinishedOn != on {
		t.Fatalf("unexpected moved entry %+v", moved)
	}
	if _, err := uc.MoveShelf(ctx, dto.MoveShelfInput{UserID: "u-1", EntryID: added.ID, Shelf: "lost"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown shelf must be invalid input, got %v", err)
	}
}

func TestLogProgressStartsWantToReadEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{
		time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 21, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 16, 21, 0, 0, 0, time.UTC),
	}}
	uc := newLibrary(t, clk)

	entry, err := uc.AddBook(ctx, dto.AddBookInput{UserID: "u-1", Title: "Middlemarch", PageCount: intPtr(800)})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	if entry.Shelf != "want_to_read" {
		t.Fatalf("default shelf must be want_to_read, got %s", entry.Shelf)
	}

	note := "chapter 10"
	first, err := uc.LogProgress(ctx, dto.LogProgressInput{UserID: "u-1", EntryID: entry.ID, Page: 200, Note: &note})
	if err != nil {
		t.Fatalf("log progress: %v", err)
	}
	if !first.StartedReading || first.Shelf != "reading" || first.Progress.Percent != 0.25 {
		t.Fatalf("unexpected first progress %+v", first)
	}
	after, err := uc.GetEntry(ctx, dto.GetEntryInput{UserID: "u-1", EntryID: entry.ID})
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if after.StartedOn == nil || *after.StartedOn != civil.MustParse("2024-06-15") {
		t.Fatalf("startedOn must be the progress day, got %v", after.StartedOn)
	}

	second, err := uc.LogProgress(ctx, dto.LogProgressInput{UserID: "u-1", EntryID: entry.ID, Page: 900, PageCount: intPtr(850)})
	if err != nil {
		t.Fatalf("log progress: %v", err)
	}
	if second.StartedReading || second.Progress.Percent != 1 {
		t.Fatalf("unexpected second progress %+v", second)
	}

	history, err := uc.ListProgress(ctx, dto.ListProgressInput{UserID: "u-1", EntryID: entry.ID})
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(history) != 2 || history[0].Page != 900 || history[1].Note == nil || *history[1].Note != note {
		t.Fatalf("progress must be most recent first: %+v", history)
	}

	if _, err := uc.LogProgress(ctx, dto.LogProgressInput{UserID: "u-1", EntryID: entry.ID, Page: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("negative page must be invalid, got %v", err)
	}
	if _, err := uc.ListProgress(ctx, dto.ListProgressInput{UserID: "u-9", EntryID: entry.ID}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign progress must be not found, got %v", err)
	}
}

func TestGoalUpsertAndLookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newLibrary(t, clock.Fixed(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	if _, err := uc.GetGoal(ctx, dto.GetGoalInput{UserID: "u-1"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing goal must be not found, got %v", err)
	}
	if _, err := uc.SetGoal(ctx, dto.SetGoalInput{UserID: "u-1", Target: 12}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	goal, err := uc.SetGoal(ctx, dto.SetGoalInput{UserID: "u-1", Target: 20})
	if err != nil {
		t.Fatalf("update goal: %v", err)
	}
	if goal.Year != 2024 || goal.Target != 20 || goal.GoalType != "book_count" {
		t.Fatalf("unexpected goal %+v", goal)
	}
	loaded, err := uc.GetGoal(ctx, dto.GetGoalInput{UserID: "u-1", Year: 2024})
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if loaded.Target != 20 {
		t.Fatalf("upsert must replace target, got %d", loaded.Target)
	}
	for _, in := range []dto.SetGoalInput{
		{UserID: "u-1", Year: 2019, Target: 5},
		{UserID: "u-1", Year: 2024, Target: 0},
		{UserID: "u-1", Year: 2024, Target: 10001},
	} {
		if _, err := uc.SetGoal(ctx, in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", in, err)
		}
	}
}

func strPtr(v string) *string { return &v }

func TestReviewUpsertValidationAndOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newLibrary(t, clock.Fixed(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)))

	entry, err := uc.AddBook(ctx, dto.AddBookInput{UserID: "u-1", Title: "Piranesi", Shelf: "finished"})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	if _, err := uc.GetReview(ctx, dto.GetReviewInput{UserID: "u-1", EntryID: entry.ID}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing review must be not found, got %v", err)
	}

	for _, rating := range []float64{0, 0.5, 5.5, 3.3} {
		_, err := uc.SetReview(ctx, dto.SetReviewInput{UserID: "u-1", EntryID: entry.ID, Rating: rating})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("rating %v must be invalid, got %v", rating, err)
		}
	}
	long := strPtr(strings.Repeat("a", 5001))
	if _, err := uc.SetReview(ctx, dto.SetReviewInput{UserID: "u-1", EntryID: entry.ID, Rating: 4, Body: long}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("oversized body must be invalid, got %v", err)
	}
	if _, err := uc.SetReview(ctx, dto.SetReviewInput{UserID: "u-2", EntryID: entry.ID, Rating: 4}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign entry must be not found, got %v", err)
	}

	first, err := uc.SetReview(ctx, dto.SetReviewInput{UserID: "u-1", EntryID: entry.ID, Rating: 3.5, Body: strPtr("odd and lovely")})
	if err != nil {
		t.Fatalf("set review: %v", err)
	}
	second, err := uc.SetReview(ctx, dto.SetReviewInput{UserID: "u-1", EntryID: entry.ID, Rating: 5})
	if err != nil {
		t.Fatalf("replace review: %v", err)
	}
	if second.ID != first.ID || second.Rating != 5 || second.Body != nil {
		t.Fatalf("second write must replace the first, got %+v after %+v", second, first)
	}
	got, err := uc.GetReview(ctx, dto.GetReviewInput{UserID: "u-1", EntryID: entry.ID})
	if err != nil || got.Rating != 5 {
		t.Fatalf("get review: %+v %v", got, err)
	}
	if _, err := uc.GetReview(ctx, dto.GetReviewInput{UserID: "u-2", EntryID: entry.ID}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign review must be not found, got %v", err)
	}
}

func TestRemoveEntryIsOwnerScoped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newLibrary(t, clock.Fixed(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)))

	entry, err := uc.AddBook(ctx, dto.AddBookInput{UserID: "u-1", Title: "Beloved"})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	if err := uc.RemoveEntry(ctx, dto.RemoveEntryInput{UserID: "u-1"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("missing entry id must be invalid, got %v", err)
	}
	if err := uc.RemoveEntry(ctx, dto.RemoveEntryInput{UserID: "u-2", EntryID: entry.ID}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign entry must be not found, got %v", err)
	}
	if err := uc.RemoveEntry(ctx, dto.RemoveEntryInput{UserID: "u-1", EntryID: entry.ID}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	entries, err := uc.ListEntries(ctx, dto.ListEntriesInput{UserID: "u-1"})
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty library, got %d entries, %v", len(entries), err)
	}
}

func TestDisplayNameRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newLibrary(t, clock.Fixed(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)))

	if _, err := uc.GetProfile(ctx, dto.GetProfileInput{UserID: "u-1"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown user must be not found, got %v", err)
	}
	if _, err := uc.SetDisplayName(ctx, dto.SetDisplayNameInput{UserID: "u-1", DisplayName: strings.Repeat("n", 101)}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("long name must be invalid, got %v", err)
	}
	if _, err := uc.SetDisplayName(ctx, dto.SetDisplayNameInput{UserID: "u-1", DisplayName: "Ada"}); err != nil {
		t.Fatalf("set name: %v", err)
	}
	// Adding a book later must not reset the chosen name.
	if _, err := uc.AddBook(ctx, dto.AddBookInput{UserID: "u-1", Title: "Middlemarch"}); err != nil {
		t.Fatalf("add book: %v", err)
	}
	profile, err := uc.GetProfile(ctx, dto.GetProfileInput{UserID: "u-1"})
	if err != nil || profile.DisplayName != "Ada" {
		t.Fatalf("profile: %+v %v", profile, err)
	}
}
