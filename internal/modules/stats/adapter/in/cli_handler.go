package in

import (
	"context"

	"readrise/internal/modules/stats/dto"
	statsin "readrise/internal/modules/stats/port/in"
	"readrise/internal/platform/civil"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Streak(ctx context.Context, userID string, today *civil.Date) (dto.StreakOutput, error) {
	return h.usecase.Streak(ctx, dto.StreakInput{UserID: userID, Today: today})
}

func (h CLIHandler) Stats(ctx context.Context, userID string) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx, dto.StatsInput{UserID: userID})
}

func (h CLIHandler) Dashboard(ctx context.Context, userID string) (dto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx, dto.DashboardInput{UserID: userID})
}
