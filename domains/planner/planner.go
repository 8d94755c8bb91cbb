package planner

import (
	"context"

	"github.com/AzielCF/az-planner/calendar/domain/event"
	"github.com/AzielCF/az-planner/calendar/domain/export"
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/domain/stats"
)

// Settings is the sidebar/header state of the planner session.
type Settings struct {
	SessionID     string          `json:"session_id"`
	Categories    []page.Category `json:"categories"`
	MinFollowersK int64           `json:"min_followers_k"`
	PostsPerDate  int             `json:"posts_per_date"`
	DateCount     int             `json:"date_count"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	SelectedDates []string        `json:"selected_dates"`
}

// UpdateSettingsRequest only touches the fields that are set.
type UpdateSettingsRequest struct {
	Categories    *[]string `json:"categories,omitempty"`
	MinFollowersK *int64    `json:"min_followers_k,omitempty"`
	PostsPerDate  *int      `json:"posts_per_date,omitempty"`
	DateCount     *int      `json:"date_count,omitempty"`
	Year          *int      `json:"year,omitempty"`
	Month         *int      `json:"month,omitempty"`
}

type ToggleDateRequest struct {
	Date string `json:"date" form:"date"`
}

type SelectDatesRequest struct {
	Dates []string `json:"dates" form:"dates"`
}

// RandomDatesRequest falls back to the session values for zero fields.
type RandomDatesRequest struct {
	Count int `json:"count" form:"count"`
	Year  int `json:"year" form:"year"`
	Month int `json:"month" form:"month"`
}

type RandomDatesResponse struct {
	Dates []string `json:"dates"`
}

type GenerateResponse struct {
	Message    string                `json:"message"`
	Events     []event.CalendarEvent `json:"events"`
	TotalPosts int                   `json:"total_posts"`
	Stats      stats.GlobalStats     `json:"stats"`
}

type MonthRequest struct {
	Year  int `json:"year" query:"year"`
	Month int `json:"month" query:"month"`
}

type MonthResponse struct {
	Year         int                 `json:"year"`
	Month        int                 `json:"month"`
	DaysInMonth  int                 `json:"days_in_month"`
	FirstWeekday int                 `json:"first_weekday"` // 0 = Sunday
	Days         []stats.CalendarDay `json:"days"`
}

type StatsResponse struct {
	Global     stats.GlobalStats     `json:"global"`
	Categories []stats.CategoryStats `json:"categories"`
	Totals     stats.Totals          `json:"totals"`
	Daily      []stats.DailyRollup   `json:"daily"`
}

// INotifier pushes planner events to live listeners (websocket clients).
type INotifier interface {
	Notify(code, message string, result any)
}

type IPlannerUsecase interface {
	GetSettings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, request UpdateSettingsRequest) (Settings, error)
	ToggleDate(ctx context.Context, request ToggleDateRequest) (Settings, error)
	SelectDates(ctx context.Context, request SelectDatesRequest) (Settings, error)
	ClearSelection(ctx context.Context) (Settings, error)

	GenerateRandomDates(ctx context.Context, request RandomDatesRequest) (RandomDatesResponse, error)
	GenerateCalendar(ctx context.Context) (GenerateResponse, error)

	Month(ctx context.Context, request MonthRequest) (MonthResponse, error)
	DayDetail(ctx context.Context, date string) (stats.DayDetail, error)
	Stats(ctx context.Context) (StatsResponse, error)
	Pages(ctx context.Context) ([]page.Page, error)

	ExportAll(ctx context.Context) (export.Workbook, error)
	ExportDay(ctx context.Context, date string) (export.Workbook, error)
}
