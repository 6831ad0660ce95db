package domain

import (
	"fmt"
	"time"
)

type GoalType string

const GoalBookCount GoalType = "book_count"

const (
	MinGoalYear   = 2020
	MaxGoalYear   = 2100
	MaxGoalTarget = 10000
)

type Goal struct {
	UserID    string
	Year      int
	Type      GoalType
	Target    int
	UpdatedAt time.Time
}

func (g Goal) Validate() error {
	if g.Type != GoalBookCount {
		return fmt.Errorf("unsupported goal type %q", string(g.Type))
	}
	if g.Year < MinGoalYear || g.Year > MaxGoalYear {
		return fmt.Errorf("year must be between %d and %d", MinGoalYear, MaxGoalYear)
	}
	if g.Target < 1 || g.Target > MaxGoalTarget {
		return fmt.Errorf("target must be between 1 and %d", MaxGoalTarget)
	}
	return nil
}
