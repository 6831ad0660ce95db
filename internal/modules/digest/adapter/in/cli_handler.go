package in

import (
	"context"

	"readrise/internal/modules/digest/dto"
	digestin "readrise/internal/modules/digest/port/in"
)

type CLIHandler struct {
	usecase digestin.Usecase
}

func NewCLIHandler(usecase digestin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SendWeekly(ctx context.Context) (dto.SendWeeklyOutput, error) {
	return h.usecase.SendWeekly(ctx)
}

func (h CLIHandler) Preview(ctx context.Context, userID string) (dto.SummaryOutput, error) {
	return h.usecase.Preview(ctx, dto.PreviewInput{UserID: userID})
}
