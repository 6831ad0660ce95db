package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"readrise/internal/modules/library/domain"
	"readrise/internal/modules/library/dto"
	libraryin "readrise/internal/modules/library/port/in"
	"readrise/internal/modules/library/service"
	apperrors "readrise/internal/platform/errors"
	"readrise/internal/platform/logging"
)

type Interactor struct {
	svc    *service.LibraryService
	logger *zap.Logger
}

func NewInteractor(svc *service.LibraryService, logger *zap.Logger) libraryin.Usecase {
	return &Interactor{svc: svc, logger: logging.OrNop(logger)}
}

func (i *Interactor) AddBook(ctx context.Context, input dto.AddBookInput) (dto.EntryOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.EntryOutput{}, apperrors.Invalid(err)
	}
	book := domain.Book{Title: input.Title, Authors: input.Authors, Genres: input.Genres, PageCount: input.PageCount}
	entry, err := i.svc.AddBook(ctx, input.UserID, book, domain.Shelf(input.Shelf))
	if err != nil {
		return dto.EntryOutput{}, err
	}
	i.logger.Info("book added",
		zap.String("user_id", entry.UserID),
		zap.String("entry_id", entry.ID),
		zap.String("shelf", string(entry.Shelf)),
	)
	return toEntryOutput(entry), nil
}

func (i *Interactor) ListEntries(ctx context.Context, input dto.ListEntriesInput) ([]dto.EntryOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.Invalid(err)
	}
	var shelf *domain.Shelf
	if input.Shelf != "" {
		s := domain.Shelf(input.Shelf)
		shelf = &s
	}
	entries, err := i.svc.ListEntries(ctx, input.UserID, shelf)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryOutput(entry))
	}
	return out, nil
}

func (i *Interactor) GetEntry(ctx context.Context, input dto.GetEntryInput) (dto.EntryOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.EntryOutput{}, apperrors.Invalid(err)
	}
	entry, err := i.svc.GetEntry(ctx, input.UserID, input.EntryID)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toEntryOutput(entry), nil
}

func (i *Interactor) MoveShelf(ctx context.Context, input dto.MoveShelfInput) (dto.EntryOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.EntryOutput{}, apperrors.Invalid(err)
	}
	entry, err := i.svc.MoveShelf(ctx, input.UserID, input.EntryID, domain.Shelf(input.Shelf), input.On)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	i.logger.Info("shelf changed", zap.String("entry_id", entry.ID), zap.String("shelf", string(entry.Shelf)))
	return toEntryOutput(entry), nil
}

func (i *Interactor) LogProgress(ctx context.Context, input dto.LogProgressInput) (dto.LogProgressOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.LogProgressOutput{}, apperrors.Invalid(err)
	}
	progress, entry, started, err := i.svc.LogProgress(ctx, input.UserID, input.EntryID, input.Page, input.PageCount, input.Note)
	if err != nil {
		return dto.LogProgressOutput{}, err
	}
	if started {
		i.logger.Info("entry moved to reading on first progress", zap.String("entry_id", entry.ID))
	}
	return dto.LogProgressOutput{Progress: toProgressOutput(progress), Shelf: string(entry.Shelf), StartedReading: started}, nil
}

func (i *Interactor) ListProgress(ctx context.Context, input dto.ListProgressInput) ([]dto.ProgressOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.Invalid(err)
	}
	items, err := i.svc.ListProgress(ctx, input.UserID, input.EntryID, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProgressOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toProgressOutput(item))
	}
	return out, nil
}

func (i *Interactor) SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.GoalOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.GoalOutput{}, apperrors.Invalid(err)
	}
	goal, err := i.svc.SetGoal(ctx, input.UserID, input.Year, input.Target)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) GetGoal(ctx context.Context, input dto.GetGoalInput) (dto.GoalOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.GoalOutput{}, apperrors.Invalid(err)
	}
	goal, err := i.svc.GetGoal(ctx, input.UserID, input.Year)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) RemoveEntry(ctx context.Context, input dto.RemoveEntryInput) error {
	if err := input.Validate(); err != nil {
		return apperrors.Invalid(err)
	}
	entry, err := i.svc.RemoveEntry(ctx, input.UserID, input.EntryID)
	if err != nil {
		return err
	}
	i.logger.Info("entry removed", zap.String("user_id", entry.UserID), zap.String("entry_id", entry.ID))
	return nil
}

func (i *Interactor) SetReview(ctx context.Context, input dto.SetReviewInput) (dto.ReviewOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.ReviewOutput{}, apperrors.Invalid(err)
	}
	review, err := i.svc.SetReview(ctx, input.UserID, input.EntryID, input.Rating, input.Body)
	if err != nil {
		return dto.ReviewOutput{}, err
	}
	return toReviewOutput(review), nil
}

func (i *Interactor) GetReview(ctx context.Context, input dto.GetReviewInput) (dto.ReviewOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.ReviewOutput{}, apperrors.Invalid(err)
	}
	review, err := i.svc.GetReview(ctx, input.UserID, input.EntryID)
	if err != nil {
		return dto.ReviewOutput{}, err
	}
	return toReviewOutput(review), nil
}

func (i *Interactor) SetDisplayName(ctx context.Context, input dto.SetDisplayNameInput) (dto.ProfileOutput, error) {
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if err := input.Validate(); err != nil {
		return dto.ProfileOutput{}, apperrors.Invalid(err)
	}
	user, err := i.svc.SetDisplayName(ctx, input.UserID, input.DisplayName)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return dto.ProfileOutput{UserID: user.ID, DisplayName: user.DisplayName}, nil
}

func (i *Interactor) GetProfile(ctx context.Context, input dto.GetProfileInput) (dto.ProfileOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.ProfileOutput{}, apperrors.Invalid(err)
	}
	user, err := i.svc.GetProfile(ctx, input.UserID)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return dto.ProfileOutput{UserID: user.ID, DisplayName: user.DisplayName}, nil
}

func toReviewOutput(r domain.Review) dto.ReviewOutput {
	return dto.ReviewOutput{ID: r.ID, EntryID: r.EntryID, Rating: r.Rating, Body: r.Body, UpdatedAt: r.UpdatedAt}
}

func toEntryOutput(entry domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		ID:          entry.ID,
		BookID:      entry.Book.ID,
		Title:       entry.Book.Title,
		Authors:     entry.Book.Authors,
		Genres:      entry.Book.Genres,
		PageCount:   entry.Book.PageCount,
		Shelf:       string(entry.Shelf),
		StartedOn:   entry.StartedOn,
		FinishedOn:  entry.FinishedOn,
		AbandonedOn: entry.AbandonedOn,
		UpdatedAt:   entry.UpdatedAt,
	}
}

func toProgressOutput(p domain.Progress) dto.ProgressOutput {
	return dto.ProgressOutput{ID: p.ID, EntryID: p.EntryID, Page: p.Page, Percent: p.Percent, LoggedAt: p.LoggedAt, Note: p.Note}
}

func toGoalOutput(g domain.Goal) dto.GoalOutput {
	return dto.GoalOutput{Year: g.Year, GoalType: string(g.Type), Target: g.Target, UpdatedAt: g.UpdatedAt}
}
