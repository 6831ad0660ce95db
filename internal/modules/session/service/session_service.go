package service

import (
	"context"

	"readrise/internal/modules/session/domain"
	sessionout "readrise/internal/modules/session/port/out"
	"readrise/internal/platform/clock"
	apperrors "readrise/internal/platform/errors"
	"readrise/internal/platform/id"
	"readrise/internal/platform/tx"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	tx    tx.Manager
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, txm tx.Manager, store sessionout.SessionStore) *SessionService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &SessionService{clock: clock, idGen: idGen, tx: txm, store: store}
}

// Start closes whatever is open for the entry and opens a new session, atomically.
func (s *SessionService) Start(ctx context.Context, entryID string, startPage *int) (domain.ReadingSession, int, error) {
	now := s.clock.Now()
	session := domain.ReadingSession{
		ID:         s.idGen.New(),
		EntryID:    entryID,
		StartedAt:  now,
		PagesStart: startPage,
	}
	closed := 0
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		if closed, err = s.store.CloseOpen(ctx, entryID, now); err != nil {
			return err
		}
		return s.store.Create(ctx, session)
	})
	if err != nil {
		return domain.ReadingSession{}, 0, err
	}
	return session, closed, nil
}

// End closes an open session owned by userID. Missing, foreign and already
// closed sessions all report apperrors.ErrNotFound.
func (s *SessionService) End(ctx context.Context, userID, sessionID string, endPage *int, note *string) (domain.ReadingSession, error) {
	session, err := s.store.FindOwned(ctx, userID, sessionID)
	if err != nil {
		return domain.ReadingSession{}, err
	}
	if !session.IsOpen() {
		return domain.ReadingSession{}, apperrors.ErrNotFound
	}
	if _, err := session.Close(s.clock.Now(), endPage, note); err != nil {
		return domain.ReadingSession{}, apperrors.ErrNotFound
	}
	if err := s.store.SaveClosed(ctx, session); err != nil {
		return domain.ReadingSession{}, err
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context, entryID string, limit int) ([]domain.ReadingSession, error) {
	if limit <= 0 || limit > domain.ListLimit {
		limit = domain.ListLimit
	}
	return s.store.ListByEntry(ctx, entryID, limit)
}

func (s *SessionService) GetActive(ctx context.Context, entryID string) (domain.ReadingSession, error) {
	return s.store.FindOpen(ctx, entryID)
}
