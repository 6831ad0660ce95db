package domain

import "time"

const (
	ProgressListLimit = 50
	MaxNoteLength     = 500
)

type Progress struct {
	ID       string
	EntryID  string
	Page     int
	Percent  float64
	LoggedAt time.Time
	Note     *string
}

// ProgressPercent is page/pageCount capped at 1; without a page count it is 0.
func ProgressPercent(page int, pageCount *int) float64 {
	if pageCount == nil || *pageCount <= 0 {
		return 0
	}
	return min(float64(page)/float64(*pageCount), 1)
}
