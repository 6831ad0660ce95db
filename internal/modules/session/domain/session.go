package domain

import (
	"fmt"
	"time"
)

const (
	ListLimit     = 50
	MaxNoteLength = 500
)

// ReadingSession is open while EndedAt is nil. Once closed it is never modified.
type ReadingSession struct {
	ID              string
	EntryID         string
	StartedAt       time.Time
	EndedAt         *time.Time
	PagesStart      *int
	PagesEnd        *int
	DurationSeconds *int64
	PagesRead       *int
	PagesPerHour    *float64
	Note            *string
}

func (s ReadingSession) IsOpen() bool {
	return s.EndedAt == nil
}

// Metrics are the values derived when a session closes.
type Metrics struct {
	DurationSeconds int64
	PagesRead       *int
	PagesPerHour    *float64
}

// ComputeMetrics derives duration, pages read and reading speed.
// Pages read is only set when both page positions are known and may be negative.
// Speed needs pages read and a positive duration.
func ComputeMetrics(startedAt, endedAt time.Time, pagesStart, pagesEnd *int) Metrics {
	m := Metrics{DurationSeconds: int64(endedAt.Sub(startedAt) / time.Second)}
	if endedAt.Before(startedAt) && endedAt.Sub(startedAt)%time.Second != 0 {
		m.DurationSeconds--
	}
	if pagesStart != nil && pagesEnd != nil {
		read := *pagesEnd - *pagesStart
		m.PagesRead = &read
	}
	if m.PagesRead != nil && m.DurationSeconds > 0 {
		pph := float64(*m.PagesRead) / float64(m.DurationSeconds) * 3600
		m.PagesPerHour = &pph
	}
	return m
}

// Close stamps the end of the session and stores its metrics.
func (s *ReadingSession) Close(endedAt time.Time, pagesEnd *int, note *string) (Metrics, error) {
	if !s.IsOpen() {
		return Metrics{}, fmt.Errorf("session %s already closed", s.ID)
	}
	m := ComputeMetrics(s.StartedAt, endedAt, s.PagesStart, pagesEnd)
	end := endedAt
	duration := m.DurationSeconds
	s.EndedAt = &end
	s.PagesEnd = pagesEnd
	s.Note = note
	s.DurationSeconds = &duration
	s.PagesRead = m.PagesRead
	s.PagesPerHour = m.PagesPerHour
	return m, nil
}

// Anomalous reports a closed session whose end precedes its start, typically clock skew.
func (s ReadingSession) Anomalous() bool {
	return s.DurationSeconds != nil && *s.DurationSeconds < 0
}

// FormatDuration renders seconds as HH:MM:SS; negative values keep a leading minus.
func FormatDuration(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, seconds/3600, (seconds%3600)/60, seconds%60)
}
