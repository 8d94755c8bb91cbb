package application

import (
	"math"
	"sort"
	"time"

	"github.com/AzielCF/az-planner/calendar/domain/event"
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/domain/post"
	"github.com/AzielCF/az-planner/pkg/timeutils"
	"github.com/sirupsen/logrus"
)

// NoFollowerCap disables the upper follower bound of a GenerateInput.
const NoFollowerCap int64 = math.MaxInt64

type GenerateInput struct {
	Dates        []time.Time
	Categories   []page.Category // empty means every category
	MinFollowers int64
	MaxFollowers int64
	PostsPerDate int
}

type GenerateResult struct {
	Events     []event.CalendarEvent `json:"events"`
	TotalPosts int                   `json:"total_posts"`
}

// Engine assigns synthetic posts to roster pages for a set of dates.
// It is the only writer of the calendar store.
type Engine struct {
	store     event.CalendarStore
	estimator *Estimator
	now       func() time.Time
}

func NewEngine(store event.CalendarStore, estimator *Estimator) *Engine {
	return &Engine{
		store:     store,
		estimator: estimator,
		now:       time.Now,
	}
}

// Generate fully replaces the posts and events of every requested date and
// leaves all other dates untouched. The whole call is applied as one store
// transaction.
func (e *Engine) Generate(in GenerateInput) GenerateResult {
	dates := uniqueDates(in.Dates)
	if len(dates) == 0 {
		return GenerateResult{Events: []event.CalendarEvent{}}
	}

	result := GenerateResult{Events: make([]event.CalendarEvent, 0, len(dates))}
	e.store.Replace(func(tx event.Tx) {
		eligible := FilterPages(tx.Pages(), in.Categories, in.MinFollowers, in.MaxFollowers)
		categories, byCategory := groupByCategory(eligible)
		createdAt := e.now()

		for _, date := range dates {
			key := timeutils.FormatDate(date)
			tx.ClearDate(key)

			scheduled := date
			postIDs := make([]int, 0, in.PostsPerDate)
			for i := 0; i < in.PostsPerDate && len(categories) > 0; i++ {
				category := categories[i%len(categories)]
				candidates := byCategory[category]
				if len(candidates) == 0 {
					continue
				}
				selected := candidates[(i/len(categories))%len(candidates)]

				created := tx.AddPost(post.Post{
					PageID:        selected.ID,
					PostType:      e.estimator.RandomPostType(),
					ScheduledDate: &scheduled,
					Metrics:       e.estimator.Estimate(selected.FollowerCount),
					CreatedAt:     createdAt,
				})
				postIDs = append(postIDs, created.ID)
			}

			ev := tx.AddEvent(event.CalendarEvent{
				Date:       date,
				PostIDs:    postIDs,
				IsSelected: true,
			})
			result.Events = append(result.Events, ev)
			result.TotalPosts += len(postIDs)
		}

		logrus.WithFields(logrus.Fields{
			"dates":         len(dates),
			"eligible":      len(eligible),
			"categories":    len(categories),
			"posts_created": result.TotalPosts,
		}).Info("[PLANNER] Calendar generated")
	})

	return result
}

// FilterPages keeps active pages in the allowed categories whose follower
// count lies in [minFollowers, maxFollowers], sorted by followers descending.
// Ties keep roster order.
func FilterPages(pages []page.Page, categories []page.Category, minFollowers, maxFollowers int64) []page.Page {
	allowed := make(map[page.Category]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	out := make([]page.Page, 0, len(pages))
	for _, p := range pages {
		if !p.IsActive {
			continue
		}
		if len(allowed) > 0 && !allowed[p.Category] {
			continue
		}
		if p.FollowerCount < minFollowers || p.FollowerCount > maxFollowers {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FollowerCount > out[j].FollowerCount
	})
	return out
}

// groupByCategory returns the categories present in pages in first-seen
// order along with each category's pages, preserving their order.
func groupByCategory(pages []page.Page) ([]page.Category, map[page.Category][]page.Page) {
	var order []page.Category
	grouped := make(map[page.Category][]page.Page)
	for _, p := range pages {
		if _, seen := grouped[p.Category]; !seen {
			order = append(order, p.Category)
		}
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	return order, grouped
}

func uniqueDates(dates []time.Time) []time.Time {
	seen := make(map[string]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = timeutils.StartOfDay(d)
		key := timeutils.FormatDate(d)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}
