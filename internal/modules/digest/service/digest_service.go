package service

import (
	"context"
	"fmt"

	"readrise/internal/modules/digest/domain"
	digestout "readrise/internal/modules/digest/port/out"
	"readrise/internal/platform/clock"
)

type DigestService struct {
	clock    clock.Clock
	source   digestout.SummarySource
	notifier digestout.Notifier
}

func NewDigestService(clock clock.Clock, source digestout.SummarySource, notifier digestout.Notifier) *DigestService {
	return &DigestService{clock: clock, source: source, notifier: notifier}
}

func (s *DigestService) Recipients(ctx context.Context) ([]domain.Recipient, error) {
	recipients, err := s.source.Recipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recipients: %w", err)
	}
	return recipients, nil
}

func (s *DigestService) PagesThisWeek(ctx context.Context, userID string) (int, error) {
	since := s.clock.Now().Add(-domain.Week)
	pages, err := s.source.PagesReadSince(ctx, userID, since)
	if err != nil {
		return 0, fmt.Errorf("pages this week: %w", err)
	}
	return int(pages), nil
}

func (s *DigestService) Compose(summary domain.WeeklySummary) domain.Message {
	return summary.Message(s.clock.Now())
}

func (s *DigestService) Deliver(ctx context.Context, summary domain.WeeklySummary) error {
	return s.notifier.Notify(ctx, summary.Recipient, s.Compose(summary))
}
