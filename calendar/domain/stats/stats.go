package stats

import (
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/domain/post"
)

// ReferenceMonthDays is the fixed month length coverage is measured against,
// whatever month is on screen.
const ReferenceMonthDays = 31

type DailyRollup struct {
	Date      string       `json:"date"`
	PostCount int          `json:"post_count"`
	Totals    post.Metrics `json:"totals"`
}

type CategoryStats struct {
	Category       page.Category `json:"category"`
	PostCount      int           `json:"post_count"`
	AvgLikes       int64         `json:"avg_likes"`
	AvgViews       int64         `json:"avg_views"`
	AvgReach       int64         `json:"avg_reach"`
	AvgImpressions int64         `json:"avg_impressions"`
	AvgShares      int64         `json:"avg_shares"`
}

// Totals is the TOTAL row of the overview sheet.
type Totals struct {
	PostCount   int   `json:"post_count"`
	Likes       int64 `json:"likes"`
	Views       int64 `json:"views"`
	Reach       int64 `json:"reach"`
	Impressions int64 `json:"impressions"`
	Shares      int64 `json:"shares"`
}

type GlobalStats struct {
	TotalPages      int   `json:"total_pages"`
	TotalPosts      int   `json:"total_posts"`
	AvgFollowers    int64 `json:"avg_followers"`
	TotalFollowers  int64 `json:"total_followers"`
	CoveragePercent int   `json:"coverage"`
}

type CategoryCount struct {
	Category page.Category `json:"category"`
	Count    int           `json:"count"`
}

// CalendarDay is one populated cell of the month grid.
type CalendarDay struct {
	Date       string          `json:"date"`
	IsSelected bool            `json:"is_selected"`
	HasPosts   bool            `json:"has_posts"`
	Posts      []CategoryCount `json:"posts"`
	TotalPosts int             `json:"total_posts"`
}

type DayPost struct {
	ID             int           `json:"id"`
	PageName       string        `json:"page_name"`
	Category       page.Category `json:"category"`
	PostType       post.PostType `json:"post_type"`
	FollowerCount  int64         `json:"follower_count"`
	FollowersLabel string        `json:"followers_label"`
	ProfileLink    string        `json:"profile_link"`
	Metrics        post.Metrics  `json:"metrics"`
}

type DayDetail struct {
	Date         string       `json:"date"`
	Posts        []DayPost    `json:"posts"`
	TotalMetrics post.Metrics `json:"total_metrics"`
}
