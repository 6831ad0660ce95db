package domain

import (
	"fmt"
	"strings"
	"time"

	"readrise/internal/platform/civil"
)

type Shelf string

const (
	ShelfWantToRead Shelf = "want_to_read"
	ShelfReading    Shelf = "reading"
	ShelfFinished   Shelf = "finished"
	ShelfAbandoned  Shelf = "abandoned"
)

var Shelves = []Shelf{ShelfWantToRead, ShelfReading, ShelfFinished, ShelfAbandoned}

func (s Shelf) Validate() error {
	switch s {
	case ShelfWantToRead, ShelfReading, ShelfFinished, ShelfAbandoned:
		return nil
	default:
		return fmt.Errorf("unsupported shelf %q", string(s))
	}
}

type Book struct {
	ID        string
	Title     string
	Authors   []string
	Genres    []string
	PageCount *int
	CreatedAt time.Time
}

func (b Book) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("book id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if b.PageCount != nil && *b.PageCount < 1 {
		return fmt.Errorf("page count must be positive")
	}
	return nil
}

// Entry is one user's copy of a book.
type Entry struct {
	ID          string
	UserID      string
	Book        Book
	Shelf       Shelf
	StartedOn   *civil.Date
	FinishedOn  *civil.Date
	AbandonedOn *civil.Date
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewEntry(id, userID string, book Book, shelf Shelf, now time.Time) (Entry, error) {
	if err := shelf.Validate(); err != nil {
		return Entry{}, err
	}
	if err := book.Validate(); err != nil {
		return Entry{}, err
	}
	e := Entry{ID: id, UserID: userID, Book: book, CreatedAt: now, UpdatedAt: now}
	e.MoveTo(shelf, civil.DateOf(now), now)
	return e, nil
}

// MoveTo places the entry on shelf and stamps the milestone date for it.
// StartedOn is kept once set; finished and abandoned dates are overwritten.
func (e *Entry) MoveTo(shelf Shelf, on civil.Date, now time.Time) {
	e.Shelf = shelf
	e.UpdatedAt = now
	switch shelf {
	case ShelfReading:
		if e.StartedOn == nil {
			e.StartedOn = &on
		}
	case ShelfFinished:
		e.FinishedOn = &on
	case ShelfAbandoned:
		e.AbandonedOn = &on
	}
}

// StartOnProgress moves a want-to-read entry to reading. It reports whether the shelf changed.
func (e *Entry) StartOnProgress(today civil.Date, now time.Time) bool {
	if e.Shelf != ShelfWantToRead {
		return false
	}
	e.MoveTo(ShelfReading, today, now)
	return true
}
