package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	librarydto "readrise/internal/modules/library/dto"
	libraryin "readrise/internal/modules/library/port/in"
	"readrise/internal/modules/stats/domain"
	"readrise/internal/modules/stats/dto"
	statsin "readrise/internal/modules/stats/port/in"
	"readrise/internal/modules/stats/service"
	"readrise/internal/platform/civil"
	apperrors "readrise/internal/platform/errors"
	"readrise/internal/platform/logging"
	"readrise/internal/platform/metrics"
)

type Interactor struct {
	assembler *service.Assembler
	library   libraryin.Usecase
	logger    *zap.Logger
}

func NewInteractor(assembler *service.Assembler, library libraryin.Usecase, logger *zap.Logger) statsin.Usecase {
	return &Interactor{assembler: assembler, library: library, logger: logging.OrNop(logger)}
}

func (i *Interactor) Streak(ctx context.Context, input dto.StreakInput) (dto.StreakOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.StreakOutput{}, apperrors.Invalid(err)
	}
	today := i.assembler.Today()
	if input.Today != nil {
		today = *input.Today
	}
	streak, last, err := i.assembler.NewRequest().Streak(ctx, input.UserID, today)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	metrics.StatsAssembled.WithLabelValues("streak").Inc()
	return toStreakOutput(streak, last), nil
}

func (i *Interactor) Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.StatsOutput{}, apperrors.Invalid(err)
	}
	stats, err := i.assembler.NewRequest().Stats(ctx, input.UserID)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	metrics.StatsAssembled.WithLabelValues("stats").Inc()
	return toStatsOutput(stats), nil
}

// Dashboard builds stats, streak and goal progress from a single request memo.
func (i *Interactor) Dashboard(ctx context.Context, input dto.DashboardInput) (dto.DashboardOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.DashboardOutput{}, apperrors.Invalid(err)
	}
	req := i.assembler.NewRequest()
	stats, err := req.Stats(ctx, input.UserID)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	today := i.assembler.Today()
	streak, last, err := req.Streak(ctx, input.UserID, today)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	out := dto.DashboardOutput{Stats: toStatsOutput(stats)}
	out.Stats.Streak = toStreakOutput(streak, last)

	if i.library != nil {
		goal, err := i.library.GetGoal(ctx, librarydto.GetGoalInput{UserID: input.UserID, Year: today.Year})
		switch {
		case err == nil:
			out.Goal = &dto.GoalProgress{
				Year:     goal.Year,
				Target:   goal.Target,
				Finished: stats.BooksReadThisYear,
				Percent:  min(float64(stats.BooksReadThisYear)/float64(goal.Target), 1),
			}
		case errors.Is(err, apperrors.ErrNotFound):
		default:
			return dto.DashboardOutput{}, err
		}
	}
	metrics.StatsAssembled.WithLabelValues("dashboard").Inc()
	i.logger.Debug("dashboard assembled", zap.String("user_id", input.UserID), zap.Bool("has_goal", out.Goal != nil))
	return out, nil
}

func toStreakOutput(s domain.Streak, last *civil.Date) dto.StreakOutput {
	return dto.StreakOutput{CurrentStreak: s.Current, LongestStreak: s.Longest, LastActiveDate: last}
}

func toStatsOutput(s domain.ReadingStats) dto.StatsOutput {
	genres := make([]dto.GenreCount, 0, len(s.GenreBreakdown))
	for _, g := range s.GenreBreakdown {
		genres = append(genres, dto.GenreCount{Genre: g.Genre, Count: g.Count})
	}
	return dto.StatsOutput{
		BooksReadThisYear:   s.BooksReadThisYear,
		TotalPagesAllTime:   s.TotalPagesAllTime,
		TotalPagesThisYear:  s.TotalPagesThisYear,
		TotalHoursAllTime:   s.TotalHoursAllTime,
		AveragePagesPerHour: s.AveragePagesPerHour,
		GenreBreakdown:      genres,
		BooksPerMonth:       s.BooksPerMonth,
		Streak:              toStreakOutput(s.Streak, s.LastActiveDate),
	}
}
