package domain

import (
	"math"
	"slices"
	"strings"
	"time"

	"readrise/internal/platform/civil"
)

const (
	// TopGenres caps the genre breakdown.
	TopGenres = 6
	// GenreSeparator splits hierarchical genres such as "Fiction / Fantasy".
	GenreSeparator = " / "
)

type GenreCount struct {
	Genre string `json:"genre" yaml:"genre"`
	Count int    `json:"count" yaml:"count"`
}

type ReadingStats struct {
	BooksReadThisYear   int          `json:"booksReadThisYear" yaml:"booksReadThisYear"`
	TotalPagesAllTime   int          `json:"totalPagesAllTime" yaml:"totalPagesAllTime"`
	TotalPagesThisYear  int          `json:"totalPagesThisYear" yaml:"totalPagesThisYear"`
	TotalHoursAllTime   int          `json:"totalHoursAllTime" yaml:"totalHoursAllTime"`
	AveragePagesPerHour *int         `json:"averagePagesPerHour" yaml:"averagePagesPerHour"`
	GenreBreakdown      []GenreCount `json:"genreBreakdown" yaml:"genreBreakdown"`
	BooksPerMonth       [12]int      `json:"booksPerMonth" yaml:"booksPerMonth"`
	Streak              Streak       `json:"streak" yaml:"streak"`
	LastActiveDate      *civil.Date  `json:"lastActiveDate" yaml:"lastActiveDate"`
}

// YearWindow is the half-open interval [Jan 1, next Jan 1) in UTC.
type YearWindow struct {
	Year  int
	Start time.Time
	End   time.Time
}

func YearOf(today civil.Date) YearWindow {
	return YearWindow{
		Year:  today.Year,
		Start: civil.YearStart(today.Year).Start(),
		End:   civil.YearStart(today.Year + 1).Start(),
	}
}

// HoursFromSeconds rounds a second total to the nearest hour.
func HoursFromSeconds(seconds int64) int {
	return int(math.Round(float64(seconds) / 3600))
}

// RoundAverage keeps "no data" (nil) distinct from a genuine zero.
func RoundAverage(avg *float64) *int {
	if avg == nil {
		return nil
	}
	v := int(math.Round(*avg))
	return &v
}

// GenreBreakdown tallies the top-level segment of every genre and returns the
// most frequent ones. Ties are ordered by name.
func GenreBreakdown(genres []string, limit int) []GenreCount {
	tally := map[string]int{}
	for _, g := range genres {
		top, _, _ := strings.Cut(g, GenreSeparator)
		top = strings.TrimSpace(top)
		if top == "" {
			continue
		}
		tally[top]++
	}
	out := make([]GenreCount, 0, len(tally))
	for genre, count := range tally {
		out = append(out, GenreCount{Genre: genre, Count: count})
	}
	slices.SortFunc(out, func(a, b GenreCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Genre, b.Genre)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MonthHistogram counts the dates that fall in year, one slot per month.
func MonthHistogram(finished []civil.Date, year int) [12]int {
	var out [12]int
	for _, d := range finished {
		if d.Year != year {
			continue
		}
		out[d.Month-1]++
	}
	return out
}
