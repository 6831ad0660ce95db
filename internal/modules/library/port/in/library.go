package in

import (
	"context"

	"readrise/internal/modules/library/dto"
)

type Usecase interface {
	AddBook(ctx context.Context, input dto.AddBookInput) (dto.EntryOutput, error)
	ListEntries(ctx context.Context, input dto.ListEntriesInput) ([]dto.EntryOutput, error)
	GetEntry(ctx context.Context, input dto.GetEntryInput) (dto.EntryOutput, error)
	MoveShelf(ctx context.Context, input dto.MoveShelfInput) (dto.EntryOutput, error)
	LogProgress(ctx context.Context, input dto.LogProgressInput) (dto.LogProgressOutput, error)
	ListProgress(ctx context.Context, input dto.ListProgressInput) ([]dto.ProgressOutput, error)
	SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.GoalOutput, error)
	GetGoal(ctx context.Context, input dto.GetGoalInput) (dto.GoalOutput, error)
	RemoveEntry(ctx context.Context, input dto.RemoveEntryInput) error
	SetReview(ctx context.Context, input dto.SetReviewInput) (dto.ReviewOutput, error)
	GetReview(ctx context.Context, input dto.GetReviewInput) (dto.ReviewOutput, error)
	SetDisplayName(ctx context.Context, input dto.SetDisplayNameInput) (dto.ProfileOutput, error)
	GetProfile(ctx context.Context, input dto.GetProfileInput) (dto.ProfileOutput, error)
}
