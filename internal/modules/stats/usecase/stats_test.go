package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	librarydto "readrise/internal/modules/library/dto"
	libraryin "readrise/internal/modules/library/port/in"
	"readrise/internal/modules/stats/dto"
	"readrise/internal/modules/stats/service"
	"readrise/internal/modules/stats/usecase"
	"readrise/internal/platform/civil"
	"readrise/internal/platform/clock"
	apperrors "readrise/internal/platform/errors"
)

type countingQueries struct {
	days       []civil.Date
	finished   int
	dayQueries int
}

func (c *countingQueries) CountFinishedBetween(context.Context, string, civil.Date, civil.Date) (int, error) {
	return c.finished, nil
}
func (c *countingQueries) SumPagesRead(context.Context, string, *time.Time) (int64, error) {
	return 0, nil
}
func (c *countingQueries) SumDurationSeconds(context.Context, string) (int64, error) { return 0, nil }
func (c *countingQueries) AveragePagesPerHour(context.Context, string) (*float64, error) {
	return nil, nil
}
func (c *countingQueries) SessionDays(context.Context, string, int) ([]civil.Date, error) {
	c.dayQueries++
	return c.days, nil
}
func (c *countingQueries) FinishedGenres(context.Context, string) ([]string, error) { return nil, nil }
func (c *countingQueries) FinishedDatesBetween(context.Context, string, civil.Date, civil.Date) ([]civil.Date, error) {
	return nil, nil
}

type goalLibrary struct {
	libraryin.Usecase
	goal *librarydto.GoalOutput
	err  error
	year int
}

func (g *goalLibrary) GetGoal(_ context.Context, in librarydto.GetGoalInput) (librarydto.GoalOutput, error) {
	g.year = in.Year
	if g.err != nil {
		return librarydto.GoalOutput{}, g.err
	}
	if g.goal == nil {
		return librarydto.GoalOutput{}, apperrors.ErrNotFound
	}
	return *g.goal, nil
}

var now = clock.Fixed(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

func TestDashboardQueriesSessionDaysOnce(t *testing.T) {
	t.Parallel()
	q := &countingQueries{days: []civil.Date{civil.MustParse("2024-06-15"), civil.MustParse("2024-06-14")}, finished: 6}
	lib := &goalLibrary{goal: &librarydto.GoalOutput{Year: 2024, GoalType: "book_count", Target: 24}}
	uc := usecase.NewInteractor(service.NewAssembler(now, q, zaptest.NewLogger(t)), lib, zaptest.NewLogger(t))

	out, err := uc.Dashboard(context.Background(), dto.DashboardInput{UserID: "u-1"})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if q.dayQueries != 1 {
		t.Fatalf("expected one session-day query, got %d", q.dayQueries)
	}
	if out.Stats.Streak.CurrentStreak != 2 || out.Stats.Streak.LastActiveDate == nil {
		t.Fatalf("unexpected streak %+v", out.Stats.Streak)
	}
	if out.Goal == nil || out.Goal.Finished != 6 || out.Goal.Target != 24 || out.Goal.Percent != 0.25 {
		t.Fatalf("unexpected goal progress %+v", out.Goal)
	}
	if lib.year != 2024 {
		t.Fatalf("goal must be looked up for the current year, got %d", lib.year)
	}
}

func TestDashboardWithoutGoal(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewAssembler(now, &countingQueries{}, nil), &goalLibrary{}, nil)
	out, err := uc.Dashboard(context.Background(), dto.DashboardInput{UserID: "u-1"})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if out.Goal != nil {
		t.Fatalf("missing goal must be nil, got %+v", out.Goal)
	}
	if out.Stats.AveragePagesPerHour != nil {
		t.Fatalf("no data must keep average nil")
	}

	boom := errors.New("db down")
	uc = usecase.NewInteractor(service.NewAssembler(now, &countingQueries{}, nil), &goalLibrary{err: boom}, nil)
	if _, err := uc.Dashboard(context.Background(), dto.DashboardInput{UserID: "u-1"}); !errors.Is(err, boom) {
		t.Fatalf("goal lookup failure must propagate, got %v", err)
	}
}

func TestStreakHonoursExplicitToday(t *testing.T) {
	t.Parallel()
	q := &countingQueries{days: []civil.Date{civil.MustParse("2024-06-10"), civil.MustParse("2024-06-09")}}
	uc := usecase.NewInteractor(service.NewAssembler(now, q, nil), nil, nil)

	out, err := uc.Streak(context.Background(), dto.StreakInput{UserID: "u-1"})
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if out.CurrentStreak != 0 || out.LongestStreak != 2 {
		t.Fatalf("streak against clock day: %+v", out)
	}

	today := civil.MustParse("2024-06-11")
	out, err = uc.Streak(context.Background(), dto.StreakInput{UserID: "u-1", Today: &today})
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if out.CurrentStreak != 2 || *out.LastActiveDate != civil.MustParse("2024-06-10") {
		t.Fatalf("streak against explicit day: %+v", out)
	}

	if _, err := uc.Streak(context.Background(), dto.StreakInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("missing user must be invalid, got %v", err)
	}
}
