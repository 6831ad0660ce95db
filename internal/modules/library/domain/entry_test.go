package domain_test

import (
	"testing"
	"time"

	"readrise/internal/modules/library/domain"
	"readrise/internal/platform/civil"
)

func intPtr(v int) *int { return &v }

func TestNewEntryStampsShelfDates(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	book := domain.Book{ID: "b-1", Title: "Dune"}

	finished, err := domain.NewEntry("e-1", "u-1", book, domain.ShelfFinished, now)
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if finished.FinishedOn == nil || *finished.FinishedOn != civil.MustParse("2024-06-15") {
		t.Fatalf("finished entry must default finishedOn to today, got %v", finished.FinishedOn)
	}

	wanted, err := domain.NewEntry("e-2", "u-1", book, domain.ShelfWantToRead, now)
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if wanted.StartedOn != nil || wanted.FinishedOn != nil {
		t.Fatalf("want_to_read entry must not carry dates: %+v", wanted)
	}

	if _, err := domain.NewEntry("e-3", "u-1", book, domain.Shelf("borrowed"), now); err == nil {
		t.Fatalf("unknown shelf must fail")
	}
	if _, err := domain.NewEntry("e-4", "u-1", domain.Book{ID: "b-2", Title: " "}, domain.ShelfReading, now); err == nil {
		t.Fatalf("blank title must fail")
	}
}

func TestMoveToKeepsFirstStartDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	entry, err := domain.NewEntry("e-1", "u-1", domain.Book{ID: "b-1", Title: "Dune"}, domain.ShelfReading, now)
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	later := now.AddDate(0, 0, 10)
	entry.MoveTo(domain.ShelfReading, civil.DateOf(later), later)
	if *entry.StartedOn != civil.MustParse("2024-06-15") {
		t.Fatalf("startedOn must be kept, got %v", entry.StartedOn)
	}
	entry.MoveTo(domain.ShelfAbandoned, civil.DateOf(later), later)
	if entry.AbandonedOn == nil || *entry.AbandonedOn != civil.MustParse("2024-06-25") || !entry.UpdatedAt.Equal(later) {
		t.Fatalf("abandon must stamp date and updatedAt: %+v", entry)
	}
}

func TestStartOnProgressOnlyFromWantToRead(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	entry, _ := domain.NewEntry("e-1", "u-1", domain.Book{ID: "b-1", Title: "Dune"}, domain.ShelfWantToRead, now)
	if !entry.StartOnProgress(civil.DateOf(now), now) {
		t.Fatalf("want_to_read entry must start on progress")
	}
	if entry.Shelf != domain.ShelfReading || entry.StartedOn == nil {
		t.Fatalf("entry must be reading with a start date: %+v", entry)
	}
	if entry.StartOnProgress(civil.DateOf(now), now) {
		t.Fatalf("reading entry must not change again")
	}
}

func TestProgressPercent(t *testing.T) {
	t.Parallel()
	cases := []struct {
		page      int
		pageCount *int
		want      float64
	}{
		{page: 50, pageCount: intPtr(200), want: 0.25},
		{page: 250, pageCount: intPtr(200), want: 1},
		{page: 10, pageCount: nil, want: 0},
		{page: 0, pageCount: intPtr(100), want: 0},
	}
	for _, tc := range cases {
		if got := domain.ProgressPercent(tc.page, tc.pageCount); got != tc.want {
			t.Fatalf("page %d: expected %v, got %v", tc.page, tc.want, got)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	t.Parallel()
	valid := domain.Goal{UserID: "u-1", Year: 2024, Type: domain.GoalBookCount, Target: 24}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}
	for _, g := range []domain.Goal{
		{Year: 2019, Type: domain.GoalBookCount, Target: 1},
		{Year: 2101, Type: domain.GoalBookCount, Target: 1},
		{Year: 2024, Type: domain.GoalBookCount, Target: 0},
		{Year: 2024, Type: domain.GoalBookCount, Target: 10001},
		{Year: 2024, Type: "pages", Target: 10},
	} {
		if err := g.Validate(); err == nil {
			t.Fatalf("expected %+v to be rejected", g)
		}
	}
}
