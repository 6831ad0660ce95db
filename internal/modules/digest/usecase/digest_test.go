package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"readrise/internal/modules/digest/domain"
	"readrise/internal/modules/digest/dto"
	"readrise/internal/modules/digest/service"
	"readrise/internal/modules/digest/usecase"
	librarydto "readrise/internal/modules/library/dto"
	libraryin "readrise/internal/modules/library/port/in"
	statsdto "readrise/internal/modules/stats/dto"
	"readrise/internal/platform/clock"
	apperrors "readrise/internal/platform/errors"
)

type fakeSource struct {
	recipients []domain.Recipient
	pages      map[string]int64
	since      time.Time
}

func (f *fakeSource) Recipients(context.Context) ([]domain.Recipient, error) {
	return f.recipients, nil
}

func (f *fakeSource) PagesReadSince(_ context.Context, userID string, since time.Time) (int64, error) {
	f.since = since
	return f.pages[userID], nil
}

type fakeNotifier struct {
	sent   []domain.Message
	failOn string
}

func (f *fakeNotifier) Notify(_ context.Context, r domain.Recipient, msg domain.Message) error {
	if r.UserID == f.failOn {
		return errors.New("notification daemon unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeLibrary struct {
	libraryin.Usecase
	reading map[string]int
}

func (f *fakeLibrary) ListEntries(_ context.Context, in librarydto.ListEntriesInput) ([]librarydto.EntryOutput, error) {
	if in.Shelf != "reading" {
		return nil, errors.New("unexpected shelf filter " + in.Shelf)
	}
	return make([]librarydto.EntryOutput, f.reading[in.UserID]), nil
}

type fakeStats struct {
	streaks map[string]int
	failFor string
}

func (f *fakeStats) Streak(_ context.Context, in statsdto.StreakInput) (statsdto.StreakOutput, error) {
	if in.UserID == f.failFor {
		return statsdto.StreakOutput{}, errors.New("stats unavailable")
	}
	return statsdto.StreakOutput{CurrentStreak: f.streaks[in.UserID]}, nil
}
func (f *fakeStats) Stats(context.Context, statsdto.StatsInput) (statsdto.StatsOutput, error) {
	return statsdto.StatsOutput{}, nil
}
func (f *fakeStats) Dashboard(context.Context, statsdto.DashboardInput) (statsdto.DashboardOutput, error) {
	return statsdto.DashboardOutput{}, nil
}

var now = time.Date(2024, 6, 16, 18, 0, 0, 0, time.UTC)

func TestSendWeeklyCountsPerUserFailures(t *testing.T) {
	t.Parallel()
	source := &fakeSource{
		recipients: []domain.Recipient{{UserID: "ada", DisplayName: "Ada"}, {UserID: "bob"}, {UserID: "cy"}},
		pages:      map[string]int64{"ada": 240, "bob": 12},
	}
	notifier := &fakeNotifier{failOn: "bob"}
	stats := &fakeStats{streaks: map[string]int{"ada": 4}, failFor: "cy"}
	uc := usecase.NewInteractor(service.NewDigestService(clock.Fixed(now), source, notifier), &fakeLibrary{reading: map[string]int{"ada": 1}}, stats, zaptest.NewLogger(t))

	out, err := uc.SendWeekly(context.Background())
	if err != nil {
		t.Fatalf("send weekly: %v", err)
	}
	if out.Sent != 1 || out.Failed != 2 {
		t.Fatalf("expected 1 sent and 2 failed, got %+v", out)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected one delivered message, got %d", len(notifier.sent))
	}
	want := "Ada: 1 book in progress, 240 pages this week, 4 day streak."
	if notifier.sent[0].Body != want {
		t.Fatalf("unexpected body %q", notifier.sent[0].Body)
	}
	if !source.since.Equal(now.Add(-7 * 24 * time.Hour)) {
		t.Fatalf("pages window must start a week ago, got %s", source.since)
	}
}

func TestPreviewUsesDisplayNameWithoutSending(t *testing.T) {
	t.Parallel()
	source := &fakeSource{recipients: []domain.Recipient{{UserID: "ada", DisplayName: "Ada"}}, pages: map[string]int64{"ada": 1}}
	notifier := &fakeNotifier{}
	uc := usecase.NewInteractor(service.NewDigestService(clock.Fixed(now), source, notifier), &fakeLibrary{reading: map[string]int{"ada": 3}}, &fakeStats{}, zaptest.NewLogger(t))

	out, err := uc.Preview(context.Background(), dto.PreviewInput{UserID: "ada"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if out.DisplayName != "Ada" || out.BooksInProgress != 3 || out.PagesThisWeek != 1 || out.CurrentStreak != 0 {
		t.Fatalf("unexpected summary %+v", out)
	}
	if !strings.Contains(out.Body, "3 books in progress, 1 page this week") || out.Title != "Your reading week, June 16" {
		t.Fatalf("unexpected message %q / %q", out.Title, out.Body)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("preview must not notify")
	}

	if _, err := uc.Preview(context.Background(), dto.PreviewInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
