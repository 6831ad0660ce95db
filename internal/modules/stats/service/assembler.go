package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"readrise/internal/modules/stats/domain"
	statsout "readrise/internal/modules/stats/port/out"
	"readrise/internal/platform/civil"
	"readrise/internal/platform/clock"
	"readrise/internal/platform/logging"
)

type Assembler struct {
	clock   clock.Clock
	queries statsout.Queries
	logger  *zap.Logger
}

func NewAssembler(clock clock.Clock, queries statsout.Queries, logger *zap.Logger) *Assembler {
	return &Assembler{clock: clock, queries: queries, logger: logging.OrNop(logger)}
}

func (a *Assembler) Today() civil.Date {
	return clock.Today(a.clock)
}

// NewRequest starts a memo scope for one logical operation. Discard it when the
// operation is done; nothing is shared between requests.
func (a *Assembler) NewRequest() *Request {
	return &Request{assembler: a, days: map[string][]civil.Date{}}
}

// Request memoizes per-user session days for the lifetime of one operation.
// It is not safe for concurrent use.
type Request struct {
	assembler *Assembler
	days      map[string][]civil.Date
}

func (r *Request) SessionDays(ctx context.Context, userID string) ([]civil.Date, error) {
	if days, ok := r.days[userID]; ok {
		return days, nil
	}
	days, err := r.assembler.queries.SessionDays(ctx, userID, domain.SessionDayWindow)
	if err != nil {
		return nil, fmt.Errorf("load session days: %w", err)
	}
	r.days[userID] = days
	return days, nil
}

func (r *Request) Streak(ctx context.Context, userID string, today civil.Date) (domain.Streak, *civil.Date, error) {
	days, err := r.SessionDays(ctx, userID)
	if err != nil {
		return domain.Streak{}, nil, err
	}
	return domain.ComputeStreak(days, today), domain.LastActive(days), nil
}

// Stats assembles the full snapshot for userID relative to the clock's UTC year.
func (r *Request) Stats(ctx context.Context, userID string) (domain.ReadingStats, error) {
	q := r.assembler.queries
	today := r.assembler.Today()
	year := domain.YearOf(today)
	from, to := civil.YearStart(year.Year), civil.YearStart(year.Year+1)

	booksThisYear, err := q.CountFinishedBetween(ctx, userID, from, to)
	if err != nil {
		return domain.ReadingStats{}, fmt.Errorf("count finished books: %w", err)
	}
	pagesAll, err := q.SumPagesRead(ctx, userID, nil)
	if err != nil {
		return domain.ReadingStats{}, fmt.Errorf("sum pages: %w", err)
	}
	pagesYear, err := q.SumPagesRead(ctx, userID, &year.Start)
	if err != nil {
		return domain.ReadingStats{}, fmt.Errorf("sum pages this year: %w", err)
	}
	seconds, err := q.SumDurationSeconds(ctx, userID)
	if err != nil {
		return domain.ReadingStats{}, fmt.Errorf("sum duration: %w", err)
	}
	avg, err := q.AveragePagesPerHour(ctx, userID)
	if err != nil {
		return domain.ReadingStats{}, fmt.Errorf("average pages per hour: %w", err)
	}
	genres, err := q.FinishedGenres(ctx, userID)
	if err != nil {
		return domain.ReadingStats{}, fmt.Errorf("finished genres: %w", err)
	}
	finished, err := q.FinishedDatesBetween(ctx, userID, from, to)
	if err != nil {
		return domain.ReadingStats{}, fmt.Errorf("finished dates: %w", err)
	}
	streak, lastActive, err := r.Streak(ctx, userID, today)
	if err != nil {
		return domain.ReadingStats{}, err
	}

	stats := domain.ReadingStats{
		BooksReadThisYear:   booksThisYear,
		TotalPagesAllTime:   int(pagesAll),
		TotalPagesThisYear:  int(pagesYear),
		TotalHoursAllTime:   domain.HoursFromSeconds(seconds),
		AveragePagesPerHour: domain.RoundAverage(avg),
		GenreBreakdown:      domain.GenreBreakdown(genres, domain.TopGenres),
		BooksPerMonth:       domain.MonthHistogram(finished, year.Year),
		Streak:              streak,
		LastActiveDate:      lastActive,
	}
	r.assembler.logger.Debug("stats assembled",
		zap.String("user_id", userID),
		zap.Int("year", year.Year),
		zap.Int("books_this_year", stats.BooksReadThisYear),
		zap.Int("current_streak", streak.Current),
	)
	return stats, nil
}
