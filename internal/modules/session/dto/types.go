package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type StartInput struct {
	UserID    string
	EntryID   string
	StartPage *int
}

func (i StartInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
		validation.Field(&i.StartPage, validation.Min(0)),
	)
}

type StartOutput struct {
	Session SessionOutput `json:"session" yaml:"session"`
	// AutoClosed counts prior open sessions of the entry that were closed.
	AutoClosed int `json:"autoClosed" yaml:"autoClosed"`
}

type EndInput struct {
	UserID    string
	SessionID string
	EndPage   *int
	Note      *string
}

func (i EndInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.SessionID, validation.Required),
		validation.Field(&i.EndPage, validation.Min(0)),
		validation.Field(&i.Note, validation.RuneLength(0, 500)),
	)
}

type ListInput struct {
	UserID  string
	EntryID string
	Limit   int
}

func (i ListInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
		validation.Field(&i.Limit, validation.Min(0)),
	)
}

type GetActiveInput struct {
	UserID  string
	EntryID string
}

func (i GetActiveInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.EntryID, validation.Required),
	)
}

type SessionOutput struct {
	ID              string     `json:"id" yaml:"id"`
	EntryID         string     `json:"entryId" yaml:"entryId"`
	StartedAt       time.Time  `json:"startedAt" yaml:"startedAt"`
	EndedAt         *time.Time `json:"endedAt" yaml:"endedAt"`
	PagesStart      *int       `json:"pagesStart" yaml:"pagesStart"`
	PagesEnd        *int       `json:"pagesEnd" yaml:"pagesEnd"`
	DurationSeconds *int64     `json:"durationSeconds" yaml:"durationSeconds"`
	PagesRead       *int       `json:"pagesRead" yaml:"pagesRead"`
	PagesPerHour    *float64   `json:"pagesPerHour" yaml:"pagesPerHour"`
	Note            *string    `json:"note" yaml:"note"`
	Anomalous       bool       `json:"anomalous,omitempty" yaml:"anomalous,omitempty"`
}
