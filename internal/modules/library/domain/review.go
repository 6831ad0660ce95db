package domain

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

const (
	MinRating         = 1.0
	MaxRating         = 5.0
	MaxReviewBodySize = 5000
)

// Review is the single rating a user keeps for one library entry.
type Review struct {
	ID        string
	EntryID   string
	Rating    float64
	Body      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRating reports whether r lies in [1, 5] on a half-star step.
func ValidRating(r float64) bool {
	if r < MinRating || r > MaxRating {
		return false
	}
	return r*2 == math.Trunc(r*2)
}

func (r Review) Validate() error {
	if !ValidRating(r.Rating) {
		return fmt.Errorf("rating must be between %.0f and %.0f in steps of 0.5", MinRating, MaxRating)
	}
	if r.Body != nil && utf8.RuneCountInString(*r.Body) > MaxReviewBodySize {
		return fmt.Errorf("review body must be at most %d characters", MaxReviewBodySize)
	}
	return nil
}
