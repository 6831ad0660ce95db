package domain

import (
	"fmt"
	"time"
)

// Week is the look-back window for pages read.
const Week = 7 * 24 * time.Hour

type Recipient struct {
	UserID      string
	DisplayName string
}

type WeeklySummary struct {
	Recipient       Recipient
	BooksInProgress int
	PagesThisWeek   int
	CurrentStreak   int
}

type Message struct {
	Title string
	Body  string
}

func (s WeeklySummary) Message(now time.Time) Message {
	name := s.Recipient.DisplayName
	if name == "" {
		name = s.Recipient.UserID
	}
	return Message{
		Title: "Your reading week, " + now.UTC().Format("January 2"),
		Body: fmt.Sprintf("%s: %s in progress, %s this week, %d day streak.",
			name,
			plural(s.BooksInProgress, "book", "books"),
			plural(s.PagesThisWeek, "page", "pages"),
			s.CurrentStreak,
		),
	}
}

type Result struct {
	Sent   int
	Failed int
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
