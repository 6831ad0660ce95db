package usecase

import (
	"context"

	"go.uber.org/zap"

	"readrise/internal/modules/digest/domain"
	"readrise/internal/modules/digest/dto"
	digestin "readrise/internal/modules/digest/port/in"
	"readrise/internal/modules/digest/service"
	librarydto "readrise/internal/modules/library/dto"
	libraryin "readrise/internal/modules/library/port/in"
	statsdto "readrise/internal/modules/stats/dto"
	statsin "readrise/internal/modules/stats/port/in"
	apperrors "readrise/internal/platform/errors"
	"readrise/internal/platform/logging"
	"readrise/internal/platform/metrics"
)

type Interactor struct {
	svc     *service.DigestService
	library libraryin.Usecase
	stats   statsin.Usecase
	logger  *zap.Logger
}

func NewInteractor(svc *service.DigestService, library libraryin.Usecase, stats statsin.Usecase, logger *zap.Logger) digestin.Usecase {
	return &Interactor{svc: svc, library: library, stats: stats, logger: logging.OrNop(logger)}
}

// SendWeekly notifies every user. A failure for one user is counted and does not stop the run.
func (i *Interactor) SendWeekly(ctx context.Context) (dto.SendWeeklyOutput, error) {
	recipients, err := i.svc.Recipients(ctx)
	if err != nil {
		return dto.SendWeeklyOutput{}, err
	}
	result := domain.Result{}
	for _, r := range recipients {
		if err := ctx.Err(); err != nil {
			return dto.SendWeeklyOutput{Sent: result.Sent, Failed: result.Failed}, err
		}
		summary, err := i.summarize(ctx, r)
		if err == nil {
			err = i.svc.Deliver(ctx, summary)
		}
		if err != nil {
			result.Failed++
			metrics.DigestNotifications.WithLabelValues("failed").Inc()
			i.logger.Warn("weekly summary failed", zap.String("user_id", r.UserID), zap.Error(err))
			continue
		}
		result.Sent++
		metrics.DigestNotifications.WithLabelValues("sent").Inc()
	}
	i.logger.Info("weekly summaries delivered", zap.Int("sent", result.Sent), zap.Int("failed", result.Failed))
	return dto.SendWeeklyOutput{Sent: result.Sent, Failed: result.Failed}, nil
}

func (i *Interactor) Preview(ctx context.Context, input dto.PreviewInput) (dto.SummaryOutput, error) {
	if err := input.Validate(); err != nil {
		return dto.SummaryOutput{}, apperrors.Invalid(err)
	}
	recipient := domain.Recipient{UserID: input.UserID, DisplayName: input.UserID}
	recipients, err := i.svc.Recipients(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	for _, r := range recipients {
		if r.UserID == input.UserID {
			recipient = r
		}
	}
	summary, err := i.summarize(ctx, recipient)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	msg := i.svc.Compose(summary)
	return dto.SummaryOutput{
		UserID:          recipient.UserID,
		DisplayName:     recipient.DisplayName,
		BooksInProgress: summary.BooksInProgress,
		PagesThisWeek:   summary.PagesThisWeek,
		CurrentStreak:   summary.CurrentStreak,
		Title:           msg.Title,
		Body:            msg.Body,
	}, nil
}

func (i *Interactor) summarize(ctx context.Context, r domain.Recipient) (domain.WeeklySummary, error) {
	reading, err := i.library.ListEntries(ctx, librarydto.ListEntriesInput{UserID: r.UserID, Shelf: "reading"})
	if err != nil {
		return domain.WeeklySummary{}, err
	}
	pages, err := i.svc.PagesThisWeek(ctx, r.UserID)
	if err != nil {
		return domain.WeeklySummary{}, err
	}
	streak, err := i.stats.Streak(ctx, statsdto.StreakInput{UserID: r.UserID})
	if err != nil {
		return domain.WeeklySummary{}, err
	}
	return domain.WeeklySummary{
		Recipient:       r,
		BooksInProgress: len(reading),
		PagesThisWeek:   pages,
		CurrentStreak:   streak.CurrentStreak,
	}, nil
}
