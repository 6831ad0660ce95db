package dto

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readrise/internal/platform/civil"
)

var shelfValues = []any{"want_to_read", "reading", "finished", "abandoned"}

type AddBookInput struct {
	UserID    string
	Title     string
	Authors   []string
	Genres    []string
	PageCount *int
	Shelf     string
}

func (i AddBookInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.Title, validation.Required, validation.RuneLength(1, 500)),
		validation.Field(&i.PageCount, validation.Min(1)),
		validation.Field(&i.Shelf, validation.In(shelfValues...)),
	)
}

type ListEntriesInput struct {
	UserID string
	// Shelf filters the list when non-empty.
	Shelf string
}

func (i ListEntriesInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.Shelf, validation.In(shelfValues...)),
	)
}

type GetEntryInput struct {
	UserID  string
	EntryID string
}

func (i GetEntryInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
	)
}

type MoveShelfInput struct {
	UserID  string
	EntryID string
	Shelf   string
	// On defaults to today.
	On *civil.Date
}

func (i MoveShelfInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
		validation.Field(&i.Shelf, validation.Required, validation.In(shelfValues...)),
	)
}

type EntryOutput struct {
	ID          string      `json:"id" yaml:"id"`
	BookID      string      `json:"bookId" yaml:"bookId"`
	Title       string      `json:"title" yaml:"title"`
	Authors     []string    `json:"authors" yaml:"authors"`
	Genres      []string    `json:"genres" yaml:"genres"`
	PageCount   *int        `json:"pageCount" yaml:"pageCount"`
	Shelf       string      `json:"shelf" yaml:"shelf"`
	StartedOn   *civil.Date `json:"startedOn" yaml:"startedOn"`
	FinishedOn  *civil.Date `json:"finishedOn" yaml:"finishedOn"`
	AbandonedOn *civil.Date `json:"abandonedOn" yaml:"abandonedOn"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

type LogProgressInput struct {
	UserID  string
	EntryID string
	Page    int
	// PageCount overrides the book's page count for the percent.
	PageCount *int
	Note      *string
}

func (i LogProgressInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
		validation.Field(&i.Page, validation.Min(0)),
		validation.Field(&i.PageCount, validation.Min(1)),
		validation.Field(&i.Note, validation.RuneLength(0, 500)),
	)
}

type ProgressOutput struct {
	ID       string    `json:"id" yaml:"id"`
	EntryID  string    `json:"entryId" yaml:"entryId"`
	Page     int       `json:"page" yaml:"page"`
	Percent  float64   `json:"percent" yaml:"percent"`
	LoggedAt time.Time `json:"loggedAt" yaml:"loggedAt"`
	Note     *string   `json:"note" yaml:"note"`
}

type LogProgressOutput struct {
	Progress ProgressOutput `json:"progress" yaml:"progress"`
	Shelf    string         `json:"shelf" yaml:"shelf"`
	// StartedReading is set when this log moved the entry off want_to_read.
	StartedReading bool `json:"startedReading" yaml:"startedReading"`
}

type ListProgressInput struct {
	UserID  string
	EntryID string
	Limit   int
}

func (i ListProgressInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
		validation.Field(&i.Limit, validation.Min(0)),
	)
}

type SetGoalInput struct {
	UserID string
	// Year defaults to the current UTC year.
	Year   int
	Target int
}

func (i SetGoalInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.Year, validation.When(i.Year != 0, validation.Min(2020), validation.Max(2100))),
		validation.Field(&i.Target, validation.Required, validation.Min(1), validation.Max(10000)),
	)
}

type GetGoalInput struct {
	UserID string
	Year   int
}

func (i GetGoalInput) Validate() error {
	return validation.ValidateStruct(&i, validation.Field(&i.UserID, validation.Required))
}

type GoalOutput struct {
	Year      int       `json:"year" yaml:"year"`
	GoalType  string    `json:"goalType" yaml:"goalType"`
	Target    int       `json:"target" yaml:"target"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type RemoveEntryInput struct {
	UserID  string
	EntryID string
}

func (i RemoveEntryInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
	)
}

var halfStep = validation.By(func(value any) error {
	r, _ := value.(float64)
	if r*2 != float64(int(r*2)) {
		return errors.New("must be a multiple of 0.5")
	}
	return nil
})

type SetReviewInput struct {
	UserID  string
	EntryID string
	Rating  float64
	Body    *string
}

func (i SetReviewInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
		validation.Field(&i.Rating, validation.Required, validation.Min(1.0), validation.Max(5.0), halfStep),
		validation.Field(&i.Body, validation.RuneLength(0, 5000)),
	)
}

type GetReviewInput struct {
	UserID  string
	EntryID string
}

func (i GetReviewInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
	)
}

type ReviewOutput struct {
	ID        string    `json:"id" yaml:"id"`
	EntryID   string    `json:"entryId" yaml:"entryId"`
	Rating    float64   `json:"rating" yaml:"rating"`
	Body      *string   `json:"body" yaml:"body"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type SetDisplayNameInput struct {
	UserID      string
	DisplayName string
}

func (i SetDisplayNameInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.DisplayName, validation.Required, validation.RuneLength(1, 100)),
	)
}

type GetProfileInput struct {
	UserID string
}

func (i GetProfileInput) Validate() error {
	return validation.ValidateStruct(&i, validation.Field(&i.UserID, validation.Required))
}

type ProfileOutput struct {
	UserID      string `json:"userId" yaml:"userId"`
	DisplayName string `json:"displayName" yaml:"displayName"`
}
