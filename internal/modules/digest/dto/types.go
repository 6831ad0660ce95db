package dto

import validation "github.com/go-ozzo/ozzo-validation/v4"

type SendWeeklyOutput struct {
	Sent   int `json:"sent" yaml:"sent"`
	Failed int `json:"failed" yaml:"failed"`
}

type PreviewInput struct {
	UserID string
}

func (i PreviewInput) Validate() error {
	return validation.ValidateStruct(&i, validation.Field(&i.UserID, validation.Required))
}

type SummaryOutput struct {
	UserID          string `json:"userId" yaml:"userId"`
	DisplayName     string `json:"displayName" yaml:"displayName"`
	BooksInProgress int    `json:"booksInProgress" yaml:"booksInProgress"`
	PagesThisWeek   int    `json:"pagesThisWeek" yaml:"pagesThisWeek"`
	CurrentStreak   int    `json:"currentStreak" yaml:"currentStreak"`
	Title           string `json:"title" yaml:"title"`
	Body            string `json:"body" yaml:"body"`
}
