package in

import (
	"context"

	"readrise/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	End(ctx context.Context, input dto.EndInput) (dto.SessionOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.SessionOutput, error)
	GetActive(ctx context.Context, input dto.GetActiveInput) (dto.SessionOutput, error)
}
