package event

import "time"

// CalendarEvent groups the posts generated for one date.
// There is at most one event per date.
type CalendarEvent struct {
	ID         int       `json:"id"`
	Date       time.Time `json:"date"`
	PostIDs    []int     `json:"post_ids"`
	IsSelected bool      `json:"is_selected"`
}

func (e CalendarEvent) HasPosts() bool {
	return len(e.PostIDs) > 0
}

// DateKey is the YYYY-MM-DD form of the event date.
func (e CalendarEvent) DateKey() string {
	return e.Date.Format("2006-01-02")
}
