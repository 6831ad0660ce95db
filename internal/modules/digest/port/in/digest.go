package in

import (
	"context"

	"readrise/internal/modules/digest/dto"
)

type Usecase interface {
	SendWeekly(ctx context.Context) (dto.SendWeeklyOutput, error)
	Preview(ctx context.Context, input dto.PreviewInput) (dto.SummaryOutput, error)
}
