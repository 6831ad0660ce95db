package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readrise/internal/platform/civil"
)

type StreakInput struct {
	UserID string
	// Today overrides the clock's UTC day when set.
	Today *civil.Date
}

func (i StreakInput) Validate() error {
	return validation.ValidateStruct(&i, validation.Field(&i.UserID, validation.Required))
}

type StreakOutput struct {
	CurrentStreak  int         `json:"currentStreak" yaml:"currentStreak"`
	LongestStreak  int         `json:"longestStreak" yaml:"longestStreak"`
	LastActiveDate *civil.Date `json:"lastActiveDate" yaml:"lastActiveDate"`
}

type StatsInput struct {
	UserID string
}

func (i StatsInput) Validate() error {
	return validation.ValidateStruct(&i, validation.Field(&i.UserID, validation.Required))
}

type GenreCount struct {
	Genre string `json:"genre" yaml:"genre"`
	Count int    `json:"count" yaml:"count"`
}

type StatsOutput struct {
	BooksReadThisYear   int          `json:"booksReadThisYear" yaml:"booksReadThisYear"`
	TotalPagesAllTime   int          `json:"totalPagesAllTime" yaml:"totalPagesAllTime"`
	TotalPagesThisYear  int          `json:"totalPagesThisYear" yaml:"totalPagesThisYear"`
	TotalHoursAllTime   int          `json:"totalHoursAllTime" yaml:"totalHoursAllTime"`
	AveragePagesPerHour *int         `json:"averagePagesPerHour" yaml:"averagePagesPerHour"`
	GenreBreakdown      []GenreCount `json:"genreBreakdown" yaml:"genreBreakdown"`
	BooksPerMonth       [12]int      `json:"booksPerMonth" yaml:"booksPerMonth"`
	Streak              StreakOutput `json:"streak" yaml:"streak"`
}

type DashboardInput struct {
	UserID string
}

func (i DashboardInput) Validate() error {
	return validation.ValidateStruct(&i, validation.Field(&i.UserID, validation.Required))
}

type GoalProgress struct {
	Year     int     `json:"year" yaml:"year"`
	Target   int     `json:"target" yaml:"target"`
	Finished int     `json:"finished" yaml:"finished"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

type DashboardOutput struct {
	Stats StatsOutput `json:"stats" yaml:"stats"`
	// Goal is nil when no goal is set for the current year.
	Goal *GoalProgress `json:"goal" yaml:"goal"`
}
