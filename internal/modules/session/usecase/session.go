package usecase

import (
	"context"

	"go.uber.org/zap"

	librarydto "readrise/internal/modules/library/dto"
	libraryin "readrise/internal/modules/library/port/in"
	"readrise/internal/modules/session/domain"
	sessiondto "readrise/internal/modules/session/dto"
	sessionin "readrise/internal/modules/session/port/in"
	"readrise/internal/modules/session/service"
	apperrors "readrise/internal/platform/errors"
	"readrise/internal/platform/logging"
	"readrise/internal/platform/metrics"
)

type Interactor struct {
	svc     *service.SessionService
	library libraryin.Usecase
	logger  *zap.Logger
}

func NewInteractor(svc *service.SessionService, library libraryin.Usecase, logger *zap.Logger) sessionin.Usecase {
	return &Interactor{svc: svc, library: library, logger: logging.OrNop(logger)}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	if err := input.Validate(); err != nil {
		return sessiondto.StartOutput{}, apperrors.Invalid(err)
	}
	if err := i.ensureOwned(ctx, input.UserID, input.EntryID); err != nil {
		return sessiondto.StartOutput{}, err
	}
	session, closed, err := i.svc.Start(ctx, input.EntryID, input.StartPage)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	metrics.SessionsStarted.Inc()
	if closed > 0 {
		metrics.SessionsAutoClosed.Add(float64(closed))
		i.logger.Info("closed previous open session",
			zap.String("entry_id", input.EntryID),
			zap.Int("closed", closed),
		)
	}
	i.logger.Info("session started", zap.String("session_id", session.ID), zap.String("entry_id", session.EntryID))
	return sessiondto.StartOutput{Session: toOutput(session), AutoClosed: closed}, nil
}

func (i *Interactor) End(ctx context.Context, input sessiondto.EndInput) (sessiondto.SessionOutput, error) {
	if err := input.Validate(); err != nil {
		return sessiondto.SessionOutput{}, apperrors.Invalid(err)
	}
	session, err := i.svc.End(ctx, input.UserID, input.SessionID, input.EndPage, input.Note)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	metrics.SessionsClosed.Inc()
	if session.Anomalous() {
		metrics.SessionDurationAnomalies.Inc()
		i.logger.Warn("session closed with negative duration",
			zap.String("session_id", session.ID),
			zap.Time("started_at", session.StartedAt),
			zap.Timep("ended_at", session.EndedAt),
			zap.Int64p("duration_seconds", session.DurationSeconds),
		)
	} else {
		metrics.SessionDuration.Observe(float64(*session.DurationSeconds))
	}
	i.logger.Info("session ended",
		zap.String("session_id", session.ID),
		zap.Int64p("duration_seconds", session.DurationSeconds),
		zap.Intp("pages_read", session.PagesRead),
	)
	return toOutput(session), nil
}

func (i *Interactor) List(ctx context.Context, input sessiondto.ListInput) ([]sessiondto.SessionOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.Invalid(err)
	}
	if err := i.ensureOwned(ctx, input.UserID, input.EntryID); err != nil {
		return nil, err
	}
	sessions, err := i.svc.List(ctx, input.EntryID, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (i *Interactor) GetActive(ctx context.Context, input sessiondto.GetActiveInput) (sessiondto.SessionOutput, error) {
	if err := input.Validate(); err != nil {
		return sessiondto.SessionOutput{}, apperrors.Invalid(err)
	}
	if err := i.ensureOwned(ctx, input.UserID, input.EntryID); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	session, err := i.svc.GetActive(ctx, input.EntryID)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) ensureOwned(ctx context.Context, userID, entryID string) error {
	if i.library == nil {
		return apperrors.ErrNotFound
	}
	_, err := i.library.GetEntry(ctx, librarydto.GetEntryInput{UserID: userID, EntryID: entryID})
	return err
}

func toOutput(s domain.ReadingSession) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:              s.ID,
		EntryID:         s.EntryID,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		PagesStart:      s.PagesStart,
		PagesEnd:        s.PagesEnd,
		DurationSeconds: s.DurationSeconds,
		PagesRead:       s.PagesRead,
		PagesPerHour:    s.PagesPerHour,
		Note:            s.Note,
		Anomalous:       s.Anomalous(),
	}
}
