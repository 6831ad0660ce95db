package domain_test

import (
	"testing"
	"time"

	"readrise/internal/modules/session/domain"
)

func intPtr(v int) *int { return &v }

func TestCloseComputesMetrics(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	s := domain.ReadingSession{ID: "s-1", EntryID: "e-1", StartedAt: start, PagesStart: intPtr(100)}

	m, err := s.Close(start.Add(5*time.Minute), intPtr(150), nil)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if m.DurationSeconds != 300 || m.PagesRead == nil || *m.PagesRead != 50 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	if m.PagesPerHour == nil || *m.PagesPerHour != 600 {
		t.Fatalf("expected 600 pages per hour, got %v", m.PagesPerHour)
	}
	if s.IsOpen() || *s.DurationSeconds != 300 || *s.PagesEnd != 150 {
		t.Fatalf("session fields not stamped: %+v", s)
	}
	if _, err := s.Close(start.Add(time.Hour), nil, nil); err == nil {
		t.Fatalf("closing twice must fail")
	}
}

func TestComputeMetricsMissingPages(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		name       string
		start, end *int
	}{
		{name: "no start page", start: nil, end: intPtr(20)},
		{name: "no end page", start: intPtr(20), end: nil},
		{name: "neither", start: nil, end: nil},
	} {
		m := domain.ComputeMetrics(start, start.Add(90*time.Second+500*time.Millisecond), tc.start, tc.end)
		if m.DurationSeconds != 90 {
			t.Fatalf("%s: duration must be floored to 90, got %d", tc.name, m.DurationSeconds)
		}
		if m.PagesRead != nil || m.PagesPerHour != nil {
			t.Fatalf("%s: pages metrics must be nil: %+v", tc.name, m)
		}
	}
}

func TestComputeMetricsZeroDurationHasNoSpeed(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	m := domain.ComputeMetrics(at, at, intPtr(10), intPtr(30))
	if m.DurationSeconds != 0 || m.PagesRead == nil || *m.PagesRead != 20 || m.PagesPerHour != nil {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestComputeMetricsKeepsNegativeValues(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	m := domain.ComputeMetrics(start, start.Add(time.Hour), intPtr(120), intPtr(100))
	if m.PagesRead == nil || *m.PagesRead != -20 || m.PagesPerHour == nil || *m.PagesPerHour != -20 {
		t.Fatalf("negative pages read must be preserved: %+v", m)
	}

	s := domain.ReadingSession{ID: "s-1", StartedAt: start}
	if _, err := s.Close(start.Add(-1500*time.Millisecond), intPtr(5), nil); err != nil {
		t.Fatalf("close: %v", err)
	}
	if *s.DurationSeconds != -2 || !s.Anomalous() || s.PagesPerHour != nil {
		t.Fatalf("negative duration must be floored, kept and flagged: %+v", s)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := map[int64]string{0: "00:00:00", 59: "00:00:59", 3661: "01:01:01", 90000: "25:00:00", -75: "-00:01:15"}
	for in, want := range cases {
		if got := domain.FormatDuration(in); got != want {
			t.Fatalf("%d: expected %s, got %s", in, want, got)
		}
	}
}
