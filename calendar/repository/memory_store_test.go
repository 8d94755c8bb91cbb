package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AzielCF/az-planner/calendar/domain/event"
	"github.com/AzielCF/az-planner/calendar/domain/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postsPerDate = 5

var storeDates = []time.Time{
	time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
	time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
}

// regenerate replaces every date in storeDates with postsPerDate fresh posts.
func regenerate(store *MemoryCalendarStore) {
	store.Replace(func(tx event.Tx) {
		pages := tx.Pages()
		for _, d := range storeDates {
			date := d
			tx.ClearDate(date.Format("2006-01-02"))

			ids := make([]int, 0, postsPerDate)
			for i := 0; i < postsPerDate; i++ {
				p := tx.AddPost(post.Post{
					PageID:        pages[i%len(pages)].ID,
					PostType:      post.PostTypes[0],
					ScheduledDate: &date,
				})
				ids = append(ids, p.ID)
			}
			tx.AddEvent(event.CalendarEvent{Date: date, PostIDs: ids})
		}
	})
}

func assertWholeGeneration(t *testing.T, snap event.Snapshot) bool {
	byID := snap.PostsByID()
	perDate := make(map[string]int)
	for _, ev := range snap.Events {
		perDate[ev.DateKey()]++
		for _, id := range ev.PostIDs {
			if _, ok := byID[id]; !ok {
				return assert.Failf(t, "dangling post id", "event %d references missing post %d", ev.ID, id)
			}
		}
	}
	for date, n := range perDate {
		if n > 1 {
			return assert.Failf(t, "duplicate event", "%d events on %s", n, date)
		}
	}
	return assert.Zero(t, len(snap.Posts)%(postsPerDate*len(storeDates)), "post count %d", len(snap.Posts))
}

// Readers only ever see the state before or after a whole Replace.
func TestMemoryStore_SnapshotNeverSeesPartialReplace(t *testing.T) {
	store := NewMemoryCalendarStore(DefaultRoster())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	var reads int64
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				snap := store.Snapshot()
				atomic.AddInt64(&reads, 1)
				if !assertWholeGeneration(t, snap) || ctx.Err() != nil {
					return
				}
			}
		}()
	}

	for i := 0; i < 300; i++ {
		regenerate(store)
	}
	cancel()
	wg.Wait()

	snap := store.Snapshot()
	assert.Equal(t, uint64(300), snap.Revision)
	assert.Len(t, snap.Events, len(storeDates))
	assert.Len(t, snap.Posts, postsPerDate*len(storeDates))
	assert.Greater(t, atomic.LoadInt64(&reads), int64(0))
}

func TestMemoryStore_PanickingReplaceLeavesStateUntouched(t *testing.T) {
	store := NewMemoryCalendarStore(DefaultRoster())
	regenerate(store)
	before := store.Snapshot()

	require.Panics(t, func() {
		store.Replace(func(tx event.Tx) {
			tx.ClearDate("2024-03-05")
			tx.AddPost(post.Post{PageID: 1})
			panic("generation failed")
		})
	})

	after := store.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, uint64(1), store.Revision())

	// the lock was released and the ID counters were not advanced
	regenerate(store)
	snap := store.Snapshot()
	assert.Equal(t, 2*postsPerDate*len(storeDates), snap.Posts[len(snap.Posts)-1].ID)
}

func TestMemoryStore_IDsNeverReused(t *testing.T) {
	store := NewMemoryCalendarStore(DefaultRoster())
	regenerate(store)
	regenerate(store)

	snap := store.Snapshot()
	require.Len(t, snap.Events, 2)
	assert.Equal(t, 3, snap.Events[0].ID)
	assert.Equal(t, 11, snap.Posts[0].ID)
}

func TestMemoryWorkbookCache_ExpiresAfterTTL(t *testing.T) {
	cache := NewMemoryWorkbookCache()
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "s:1:all", []byte("xlsx"), time.Minute))

	data, err := cache.Get(ctx, "s:1:all")
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)

	now = now.Add(59 * time.Second)
	data, err = cache.Get(ctx, "s:1:all")
	require.NoError(t, err)
	assert.NotNil(t, data)

	now = now.Add(2 * time.Second)
	data, err = cache.Get(ctx, "s:1:all")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Empty(t, cache.entries)
}

func TestMemoryWorkbookCache_SetPrunesExpired(t *testing.T) {
	cache := NewMemoryWorkbookCache()
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "old", []byte("a"), time.Second))
	now = now.Add(time.Minute)
	require.NoError(t, cache.Set(ctx, "new", []byte("b"), time.Minute))

	assert.NotContains(t, cache.entries, "old")
	assert.Contains(t, cache.entries, "new")
}

func TestMemoryWorkbookCache_MissAndCopy(t *testing.T) {
	cache := NewMemoryWorkbookCache()
	ctx := context.Background()

	data, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, data)

	src := []byte("xlsx")
	require.NoError(t, cache.Set(ctx, "k", src, time.Minute))
	src[0] = 'X'
	data, _ = cache.Get(ctx, "k")
	assert.Equal(t, []byte("xlsx"), data)
}
