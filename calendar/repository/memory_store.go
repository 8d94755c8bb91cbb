package repository

import (
	"sync"

	"github.com/AzielCF/az-planner/calendar/domain/event"
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/domain/post"
)

// MemoryCalendarStore implements event.CalendarStore in process memory.
// State is lost on restart.
type MemoryCalendarStore struct {
	mu     sync.RWMutex
	pages  []page.Page
	posts  []post.Post
	events []event.CalendarEvent

	// IDs are never reused, even after ClearDate.
	lastPostID  int
	lastEventID int
	revision    uint64
}

func NewMemoryCalendarStore(roster []page.Page) *MemoryCalendarStore {
	return &MemoryCalendarStore{
		pages: append([]page.Page(nil), roster...),
	}
}

func (s *MemoryCalendarStore) Pages() []page.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]page.Page(nil), s.pages...)
}

func (s *MemoryCalendarStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *MemoryCalendarStore) Snapshot() event.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return event.Snapshot{
		Pages:    append([]page.Page(nil), s.pages...),
		Posts:    clonePosts(s.posts),
		Events:   cloneEvents(s.events),
		Revision: s.revision,
	}
}

// Replace runs fn against a staged copy of the state and swaps it in only
// when fn returns. A panicking fn leaves the store untouched.
func (s *MemoryCalendarStore) Replace(fn func(tx event.Tx)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{
		pages:       s.pages,
		posts:       clonePosts(s.posts),
		events:      cloneEvents(s.events),
		lastPostID:  s.lastPostID,
		lastEventID: s.lastEventID,
	}
	fn(tx)

	s.posts = tx.posts
	s.events = tx.events
	s.lastPostID = tx.lastPostID
	s.lastEventID = tx.lastEventID
	s.revision++
}

type memoryTx struct {
	pages       []page.Page
	posts       []post.Post
	events      []event.CalendarEvent
	lastPostID  int
	lastEventID int
}

func (tx *memoryTx) Pages() []page.Page {
	return append([]page.Page(nil), tx.pages...)
}

func (tx *memoryTx) ClearDate(dateKey string) {
	events := tx.events[:0]
	for _, e := range tx.events {
		if e.DateKey() != dateKey {
			events = append(events, e)
		}
	}
	tx.events = events

	posts := tx.posts[:0]
	for _, p := range tx.posts {
		if !p.IsScheduledOn(dateKey) {
			posts = append(posts, p)
		}
	}
	tx.posts = posts
}

func (tx *memoryTx) AddPost(p post.Post) post.Post {
	tx.lastPostID++
	p.ID = tx.lastPostID
	tx.posts = append(tx.posts, p)
	return p
}

func (tx *memoryTx) AddEvent(e event.CalendarEvent) event.CalendarEvent {
	tx.lastEventID++
	e.ID = tx.lastEventID
	e.PostIDs = append([]int(nil), e.PostIDs...)
	tx.events = append(tx.events, e)
	return e
}

func clonePosts(in []post.Post) []post.Post {
	out := make([]post.Post, len(in))
	for i, p := range in {
		if p.ScheduledDate != nil {
			d := *p.ScheduledDate
			p.ScheduledDate = &d
		}
		out[i] = p
	}
	return out
}

func cloneEvents(in []event.CalendarEvent) []event.CalendarEvent {
	out := make([]event.CalendarEvent, len(in))
	for i, e := range in {
		e.PostIDs = append([]int(nil), e.PostIDs...)
		out[i] = e
	}
	return out
}
