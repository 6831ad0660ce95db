package in

import (
	"context"

	"readrise/internal/modules/library/dto"
	libraryin "readrise/internal/modules/library/port/in"
	"readrise/internal/platform/civil"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddBook(ctx context.Context, input dto.AddBookInput) (dto.EntryOutput, error) {
	return h.usecase.AddBook(ctx, input)
}

func (h CLIHandler) ListEntries(ctx context.Context, userID, shelf string) ([]dto.EntryOutput, error) {
	return h.usecase.ListEntries(ctx, dto.ListEntriesInput{UserID: userID, Shelf: shelf})
}

func (h CLIHandler) GetEntry(ctx context.Context, userID, entryID string) (dto.EntryOutput, error) {
	return h.usecase.GetEntry(ctx, dto.GetEntryInput{UserID: userID, EntryID: entryID})
}

func (h CLIHandler) MoveShelf(ctx context.Context, userID, entryID, shelf string, on *civil.Date) (dto.EntryOutput, error) {
	return h.usecase.MoveShelf(ctx, dto.MoveShelfInput{UserID: userID, EntryID: entryID, Shelf: shelf, On: on})
}

func (h CLIHandler) LogProgress(ctx context.Context, input dto.LogProgressInput) (dto.LogProgressOutput, error) {
	return h.usecase.LogProgress(ctx, input)
}

func (h CLIHandler) ListProgress(ctx context.Context, userID, entryID string, limit int) ([]dto.ProgressOutput, error) {
	return h.usecase.ListProgress(ctx, dto.ListProgressInput{UserID: userID, EntryID: entryID, Limit: limit})
}

func (h CLIHandler) SetGoal(ctx context.Context, userID string, year, target int) (dto.GoalOutput, error) {
	return h.usecase.SetGoal(ctx, dto.SetGoalInput{UserID: userID, Year: year, Target: target})
}

func (h CLIHandler) GetGoal(ctx context.Context, userID string, year int) (dto.GoalOutput, error) {
	return h.usecase.GetGoal(ctx, dto.GetGoalInput{UserID: userID, Year: year})
}

func (h CLIHandler) RemoveEntry(ctx context.Context, userID, entryID string) error {
	return h.usecase.RemoveEntry(ctx, dto.RemoveEntryInput{UserID: userID, EntryID: entryID})
}

func (h CLIHandler) SetReview(ctx context.Context, userID, entryID string, rating float64, body *string) (dto.ReviewOutput, error) {
	return h.usecase.SetReview(ctx, dto.SetReviewInput{UserID: userID, EntryID: entryID, Rating: rating, Body: body})
}

func (h CLIHandler) GetReview(ctx context.Context, userID, entryID string) (dto.ReviewOutput, error) {
	return h.usecase.GetReview(ctx, dto.GetReviewInput{UserID: userID, EntryID: entryID})
}

func (h CLIHandler) SetDisplayName(ctx context.Context, userID, name string) (dto.ProfileOutput, error) {
	return h.usecase.SetDisplayName(ctx, dto.SetDisplayNameInput{UserID: userID, DisplayName: name})
}

func (h CLIHandler) GetProfile(ctx context.Context, userID string) (dto.ProfileOutput, error) {
	return h.usecase.GetProfile(ctx, dto.GetProfileInput{UserID: userID})
}
