package event

import (
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/domain/post"
)

// Snapshot is a consistent, caller-owned copy of the calendar state.
type Snapshot struct {
	Pages    []page.Page     `json:"pages"`
	Posts    []post.Post     `json:"posts"`
	Events   []CalendarEvent `json:"events"`
	Revision uint64          `json:"revision"`
}

// PostsByID indexes the snapshot posts by ID.
func (s Snapshot) PostsByID() map[int]post.Post {
	out := make(map[int]post.Post, len(s.Posts))
	for _, p := range s.Posts {
		out[p.ID] = p
	}
	return out
}

// EventPosts resolves the posts of e in e.PostIDs order, skipping dangling IDs.
func (s Snapshot) EventPosts(e CalendarEvent) []post.Post {
	byID := s.PostsByID()
	out := make([]post.Post, 0, len(e.PostIDs))
	for _, id := range e.PostIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Tx is the write view handed to CalendarStore.Replace.
// Nothing done through a Tx is visible to readers before Replace returns.
type Tx interface {
	Pages() []page.Page
	// ClearDate drops the event and every post scheduled on dateKey (YYYY-MM-DD).
	ClearDate(dateKey string)
	// AddPost stores p under the next unused post ID and returns it.
	AddPost(p post.Post) post.Post
	// AddEvent stores e under the next unused event ID and returns it.
	AddEvent(e CalendarEvent) CalendarEvent
}

// CalendarStore owns the roster, posts and events of one planner session.
// It has a single writer (Replace); Snapshot never observes a half-applied Replace.
type CalendarStore interface {
	Pages() []page.Page
	Snapshot() Snapshot
	Revision() uint64
	Replace(fn func(tx Tx))
}
