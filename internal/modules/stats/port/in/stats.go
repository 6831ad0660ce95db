package in

import (
	"context"

	"readrise/internal/modules/stats/dto"
)

type Usecase interface {
	Streak(ctx context.Context, input dto.StreakInput) (dto.StreakOutput, error)
	Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error)
	Dashboard(ctx context.Context, input dto.DashboardInput) (dto.DashboardOutput, error)
}
