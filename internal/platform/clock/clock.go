package clock

import (
	"time"

	"readrise/internal/platform/civil"
)

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f).UTC()
}

// Today is the UTC calendar day of the clock's current instant.
func Today(c Clock) civil.Date {
	return civil.DateOf(c.Now())
}
