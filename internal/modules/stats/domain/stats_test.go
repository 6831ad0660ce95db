package domain_test

import (
	"testing"
	"time"

	"readrise/internal/modules/stats/domain"
	"readrise/internal/platform/civil"
)

func TestGenreBreakdownUsesTopLevelSegment(t *testing.T) {
	t.Parallel()
	got := domain.GenreBreakdown([]string{
		"Fiction / Fantasy",
		"Fiction / Science Fiction",
		"History / Europe",
		"  ",
		"Biography",
		"History",
		"Fiction",
	}, domain.TopGenres)
	want := []domain.GenreCount{{Genre: "Fiction", Count: 3}, {Genre: "History", Count: 2}, {Genre: "Biography", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestGenreBreakdownCapsAndOrdersTies(t *testing.T) {
	t.Parallel()
	got := domain.GenreBreakdown([]string{"H", "G", "F", "E", "D", "C", "B", "A", "A"}, domain.TopGenres)
	if len(got) != domain.TopGenres {
		t.Fatalf("expected %d genres, got %d", domain.TopGenres, len(got))
	}
	names := []string{"A", "B", "C", "D", "E", "F"}
	for i, name := range names {
		if got[i].Genre != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, got[i].Genre)
		}
	}
	if got[0].Count != 2 {
		t.Fatalf("expected A counted twice, got %d", got[0].Count)
	}
}

func TestMonthHistogramOnlyCountsYear(t *testing.T) {
	t.Parallel()
	got := domain.MonthHistogram(dates("2024-01-03", "2024-01-30", "2024-12-31", "2023-12-31", "2025-01-01"), 2024)
	if got[0] != 2 || got[11] != 1 {
		t.Fatalf("unexpected histogram %v", got)
	}
	total := 0
	for _, n := range got {
		total += n
	}
	if total != 3 {
		t.Fatalf("out-of-year dates leaked into histogram: %v", got)
	}
}

func TestYearWindowIsHalfOpenUTC(t *testing.T) {
	t.Parallel()
	w := domain.YearOf(civil.MustParse("2024-06-15"))
	if !w.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) || !w.End.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window %+v", w)
	}
}

func TestRounding(t *testing.T) {
	t.Parallel()
	if domain.HoursFromSeconds(5400) != 2 || domain.HoursFromSeconds(5399) != 1 || domain.HoursFromSeconds(0) != 0 {
		t.Fatalf("hours rounding is off")
	}
	if domain.RoundAverage(nil) != nil {
		t.Fatalf("nil average must stay nil")
	}
	zero := 0.0
	if got := domain.RoundAverage(&zero); got == nil || *got != 0 {
		t.Fatalf("zero average must stay zero, got %v", got)
	}
	avg := 42.5
	if got := domain.RoundAverage(&avg); got == nil || *got != 43 {
		t.Fatalf("expected 43, got %v", got)
	}
}
