package application

import (
	"sort"
	"time"

	"github.com/AzielCF/az-planner/calendar/domain/event"
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/domain/post"
	"github.com/AzielCF/az-planner/calendar/domain/stats"
	"github.com/AzielCF/az-planner/pkg/utils"
)

// Aggregator functions are pure reads: no side effects, and empty inputs
// produce zero values instead of errors.

func DailyRollup(ev event.CalendarEvent, posts []post.Post) stats.DailyRollup {
	byID := make(map[int]post.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	rollup := stats.DailyRollup{Date: ev.DateKey()}
	for _, id := range ev.PostIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		rollup.PostCount++
		rollup.Totals = rollup.Totals.Add(p.Metrics)
	}
	return rollup
}

// CategoryRollup averages metrics per category over the posts whose page
// belongs to it. Averages are floored; categories without posts are omitted.
func CategoryRollup(posts []post.Post, roster []page.Page) []stats.CategoryStats {
	categoryOf := make(map[int]page.Category, len(roster))
	for _, p := range roster {
		categoryOf[p.ID] = p.Category
	}

	counts := make(map[page.Category]int)
	sums := make(map[page.Category]post.Metrics)
	for _, p := range posts {
		c, ok := categoryOf[p.PageID]
		if !ok {
			continue
		}
		counts[c]++
		sums[c] = sums[c].Add(p.Metrics)
	}

	out := make([]stats.CategoryStats, 0, len(page.Categories))
	for _, c := range page.Categories {
		n := int64(counts[c])
		if n == 0 {
			continue
		}
		s := sums[c]
		out = append(out, stats.CategoryStats{
			Category:       c,
			PostCount:      counts[c],
			AvgLikes:       s.Likes / n,
			AvgViews:       s.Views / n,
			AvgReach:       s.Reach / n,
			AvgImpressions: s.Impressions / n,
			AvgShares:      s.Shares / n,
		})
	}
	return out
}

func TotalsRow(posts []post.Post) stats.Totals {
	var sum post.Metrics
	for _, p := range posts {
		sum = sum.Add(p.Metrics)
	}
	return stats.Totals{
		PostCount:   len(posts),
		Likes:       sum.Likes,
		Views:       sum.Views,
		Reach:       sum.Reach,
		Impressions: sum.Impressions,
		Shares:      sum.Shares,
	}
}

// GlobalStats measures coverage against stats.ReferenceMonthDays rather
// than the real length of any month.
func GlobalStats(roster []page.Page, posts []post.Post, events []event.CalendarEvent) stats.GlobalStats {
	var totalFollowers int64
	for _, p := range roster {
		totalFollowers += p.FollowerCount
	}

	var avgFollowers int64
	if len(roster) > 0 {
		avgFollowers = totalFollowers / int64(len(roster))
	}

	activeDates := 0
	for _, e := range events {
		if e.HasPosts() {
			activeDates++
		}
	}

	return stats.GlobalStats{
		TotalPages:      len(roster),
		TotalPosts:      len(posts),
		AvgFollowers:    avgFollowers,
		TotalFollowers:  totalFollowers,
		CoveragePercent: activeDates * 100 / stats.ReferenceMonthDays,
	}
}

// MonthDays lists the days of year/month that have posts, in date order,
// with post counts per category. selected holds YYYY-MM-DD keys.
func MonthDays(snap event.Snapshot, year int, month time.Month, selected []string) []stats.CalendarDay {
	isSelected := make(map[string]bool, len(selected))
	for _, s := range selected {
		isSelected[s] = true
	}
	categoryOf := make(map[int]page.Category, len(snap.Pages))
	for _, p := range snap.Pages {
		categoryOf[p.ID] = p.Category
	}

	days := make([]stats.CalendarDay, 0)
	for _, ev := range snap.Events {
		if ev.Date.Year() != year || ev.Date.Month() != month {
			continue
		}
		posts := snap.EventPosts(ev)
		if len(posts) == 0 {
			continue
		}

		counts := make(map[page.Category]int)
		for _, p := range posts {
			if c, ok := categoryOf[p.PageID]; ok {
				counts[c]++
			}
		}
		summary := make([]stats.CategoryCount, 0, len(counts))
		for _, c := range page.Categories {
			if counts[c] > 0 {
				summary = append(summary, stats.CategoryCount{Category: c, Count: counts[c]})
			}
		}

		key := ev.DateKey()
		days = append(days, stats.CalendarDay{
			Date:       key,
			IsSelected: isSelected[key],
			HasPosts:   true,
			Posts:      summary,
			TotalPosts: len(posts),
		})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// DayDetail joins the posts scheduled on dateKey with their pages.
// ok is false when the day has no posts.
func DayDetail(snap event.Snapshot, dateKey string) (stats.DayDetail, bool) {
	detail := stats.DayDetail{Date: dateKey, Posts: []stats.DayPost{}}
	for _, p := range snap.Posts {
		if !p.IsScheduledOn(dateKey) {
			continue
		}
		pg, _ := page.FindByID(snap.Pages, p.PageID)
		detail.Posts = append(detail.Posts, stats.DayPost{
			ID:             p.ID,
			PageName:       pg.PageName,
			Category:       pg.Category,
			PostType:       p.PostType,
			FollowerCount:  pg.FollowerCount,
			FollowersLabel: utils.FormatCompact(pg.FollowerCount),
			ProfileLink:    pg.ProfileLink,
			Metrics:        p.Metrics,
		})
		detail.TotalMetrics = detail.TotalMetrics.Add(p.Metrics)
	}
	return detail, len(detail.Posts) > 0
}

// PostsOn returns the posts scheduled on dateKey in creation order.
func PostsOn(posts []post.Post, dateKey string) []post.Post {
	out := make([]post.Post, 0)
	for _, p := range posts {
		if p.IsScheduledOn(dateKey) {
			out = append(out, p)
		}
	}
	return out
}
