package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/AzielCF/az-planner/calendar/application"
	"github.com/AzielCF/az-planner/calendar/domain/event"
	"github.com/AzielCF/az-planner/calendar/domain/export"
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/domain/post"
	"github.com/AzielCF/az-planner/calendar/domain/stats"
	coreconfig "github.com/AzielCF/az-planner/core/config"
	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	"github.com/AzielCF/az-planner/infrastructure/excel"
	pkgError "github.com/AzielCF/az-planner/pkg/error"
	"github.com/AzielCF/az-planner/pkg/timeutils"
	"github.com/AzielCF/az-planner/validations"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	CodeCalendarGenerated = "CALENDAR_GENERATED"
	CodeSelectionChanged  = "SELECTION_CHANGED"
)

// PlannerDeps wires a planner session. Cache and Notifier are optional.
type PlannerDeps struct {
	Store    event.CalendarStore
	Engine   *application.Engine
	Rand     application.RandSource
	Writer   *excel.Writer
	Cache    export.WorkbookCache
	Notifier domainPlanner.INotifier
	Config   coreconfig.PlannerConfig
	CacheTTL time.Duration
	Now      func() time.Time
}

type plannerService struct {
	deps PlannerDeps
	id   string

	mu            sync.Mutex
	categories    []page.Category
	minFollowersK int64
	postsPerDate  int
	dateCount     int
	year          int
	month         time.Month
	selected      []string
}

// NewPlannerService creates the single planner session of the process.
func NewPlannerService(deps PlannerDeps) domainPlanner.IPlannerUsecase {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = 10 * time.Minute
	}

	postsPerDate := deps.Config.PostsPerDate
	if postsPerDate <= 0 {
		postsPerDate = 5
	}
	dateCount := deps.Config.DateCount
	if dateCount <= 0 {
		dateCount = 5
	}
	minFollowersK := deps.Config.MinFollowersK
	if minFollowersK < 0 {
		minFollowersK = 0
	}

	now := deps.Now()
	svc := &plannerService{
		deps:          deps,
		id:            uuid.NewString(),
		categories:    append([]page.Category(nil), page.Categories...),
		minFollowersK: minFollowersK,
		postsPerDate:  postsPerDate,
		dateCount:     dateCount,
		year:          now.Year(),
		month:         now.Month(),
		selected:      []string{},
	}
	logrus.Infof("[PLANNER] Session %s ready (posts/date=%d, min followers=%dk)", svc.id, postsPerDate, minFollowersK)
	return svc
}

func (s *plannerService) settingsLocked() domainPlanner.Settings {
	return domainPlanner.Settings{
		SessionID:     s.id,
		Categories:    append([]page.Category(nil), s.categories...),
		MinFollowersK: s.minFollowersK,
		PostsPerDate:  s.postsPerDate,
		DateCount:     s.dateCount,
		Year:          s.year,
		Month:         int(s.month),
		SelectedDates: append([]string{}, s.selected...),
	}
}

func (s *plannerService) GetSettings(ctx context.Context) (domainPlanner.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsLocked(), nil
}

func (s *plannerService) UpdateSettings(ctx context.Context, request domainPlanner.UpdateSettingsRequest) (domainPlanner.Settings, error) {
	if err := validations.ValidateUpdateSettings(ctx, request); err != nil {
		return domainPlanner.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if request.Categories != nil {
		categories := make([]page.Category, 0, len(*request.Categories))
		for _, c := range *request.Categories {
			categories = append(categories, page.Category(c))
		}
		s.categories = categories
	}
	if request.MinFollowersK != nil {
		s.minFollowersK = *request.MinFollowersK
	}
	if request.PostsPerDate != nil {
		s.postsPerDate = *request.PostsPerDate
	}
	if request.DateCount != nil {
		s.dateCount = *request.DateCount
	}
	if request.Year != nil {
		s.year = *request.Year
	}
	if request.Month != nil {
		s.month = time.Month(*request.Month)
	}

	return s.settingsLocked(), nil
}

func (s *plannerService) ToggleDate(ctx context.Context, request domainPlanner.ToggleDateRequest) (domainPlanner.Settings, error) {
	if err := validations.ValidateToggleDate(ctx, request); err != nil {
		return domainPlanner.Settings{}, err
	}

	s.mu.Lock()
	removed := false
	next := make([]string, 0, len(s.selected)+1)
	for _, d := range s.selected {
		if d == request.Date {
			removed = true
			continue
		}
		next = append(next, d)
	}
	if !removed {
		next = append(next, request.Date)
	}
	s.selected = next
	settings := s.settingsLocked()
	s.mu.Unlock()

	s.notify(CodeSelectionChanged, "Selection updated", settings.SelectedDates)
	return settings, nil
}

func (s *plannerService) SelectDates(ctx context.Context, request domainPlanner.SelectDatesRequest) (domainPlanner.Settings, error) {
	if err := validations.ValidateSelectDates(ctx, request); err != nil {
		return domainPlanner.Settings{}, err
	}

	s.mu.Lock()
	s.selected = dedupe(request.Dates)
	settings := s.settingsLocked()
	s.mu.Unlock()

	s.notify(CodeSelectionChanged, "Selection updated", settings.SelectedDates)
	return settings, nil
}

func (s *plannerService) ClearSelection(ctx context.Context) (domainPlanner.Settings, error) {
	return s.SelectDates(ctx, domainPlanner.SelectDatesRequest{})
}

func (s *plannerService) GenerateRandomDates(ctx context.Context, request domainPlanner.RandomDatesRequest) (domainPlanner.RandomDatesResponse, error) {
	if err := validations.ValidateRandomDates(ctx, request); err != nil {
		return domainPlanner.RandomDatesResponse{}, err
	}

	s.mu.Lock()
	count, year, month := s.dateCount, s.year, s.month
	if request.Count > 0 {
		count = request.Count
	}
	if request.Year > 0 {
		year = request.Year
	}
	if request.Month > 0 {
		month = time.Month(request.Month)
	}

	dates := application.RandomDates(s.deps.Rand, count, year, month)
	s.selected = append([]string{}, dates...)
	s.mu.Unlock()

	logrus.Debugf("[PLANNER] Picked %d random dates for %d-%02d", len(dates), year, month)
	s.notify(CodeSelectionChanged, fmt.Sprintf("Generated %d random dates", len(dates)), dates)
	return domainPlanner.RandomDatesResponse{Dates: dates}, nil
}

func (s *plannerService) GenerateCalendar(ctx context.Context) (domainPlanner.GenerateResponse, error) {
	s.mu.Lock()
	selected := append([]string{}, s.selected...)
	input := application.GenerateInput{
		Categories:   append([]page.Category(nil), s.categories...),
		MinFollowers: s.minFollowersK * 1000,
		MaxFollowers: application.NoFollowerCap,
		PostsPerDate: s.postsPerDate,
	}
	s.mu.Unlock()

	if len(selected) == 0 {
		return domainPlanner.GenerateResponse{}, pkgError.ValidationError("Please select dates first")
	}

	// Parse every date before touching the store so a bad one changes nothing.
	for _, d := range selected {
		parsed, err := timeutils.ParseDate(d)
		if err != nil {
			return domainPlanner.GenerateResponse{}, pkgError.ValidationError(err.Error())
		}
		input.Dates = append(input.Dates, parsed)
	}

	result := s.deps.Engine.Generate(input)
	snap := s.deps.Store.Snapshot()
	global := application.GlobalStats(snap.Pages, snap.Posts, snap.Events)

	response := domainPlanner.GenerateResponse{
		Message:    "Calendar generated successfully",
		Events:     result.Events,
		TotalPosts: result.TotalPosts,
		Stats:      global,
	}
	logrus.Infof("[PLANNER] Generated %d posts across %d dates", result.TotalPosts, len(result.Events))
	s.notify(CodeCalendarGenerated, response.Message, global)
	return response, nil
}

func (s *plannerService) Month(ctx context.Context, request domainPlanner.MonthRequest) (domainPlanner.MonthResponse, error) {
	if err := validations.ValidateMonth(ctx, request); err != nil {
		return domainPlanner.MonthResponse{}, err
	}

	s.mu.Lock()
	year, month := s.year, s.month
	selected := append([]string{}, s.selected...)
	s.mu.Unlock()

	if request.Year > 0 {
		year = request.Year
	}
	if request.Month > 0 {
		month = time.Month(request.Month)
	}

	snap := s.deps.Store.Snapshot()
	return domainPlanner.MonthResponse{
		Year:         year,
		Month:        int(month),
		DaysInMonth:  timeutils.DaysInMonth(year, month),
		FirstWeekday: int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()),
		Days:         application.MonthDays(snap, year, month, selected),
	}, nil
}

func (s *plannerService) DayDetail(ctx context.Context, date string) (stats.DayDetail, error) {
	if err := validations.ValidateDate(ctx, date); err != nil {
		return stats.DayDetail{}, err
	}

	detail, ok := application.DayDetail(s.deps.Store.Snapshot(), date)
	if !ok {
		return stats.DayDetail{}, pkgError.NotFoundError(fmt.Sprintf("no posts scheduled on %s", date))
	}
	return detail, nil
}

func (s *plannerService) Stats(ctx context.Context) (domainPlanner.StatsResponse, error) {
	snap := s.deps.Store.Snapshot()

	daily := make([]stats.DailyRollup, 0, len(snap.Events))
	for _, ev := range snap.Events {
		if ev.HasPosts() {
			daily = append(daily, application.DailyRollup(ev, snap.Posts))
		}
	}

	return domainPlanner.StatsResponse{
		Global:     application.GlobalStats(snap.Pages, snap.Posts, snap.Events),
		Categories: application.CategoryRollup(snap.Posts, snap.Pages),
		Totals:     application.TotalsRow(snap.Posts),
		Daily:      daily,
	}, nil
}

func (s *plannerService) Pages(ctx context.Context) ([]page.Page, error) {
	return s.deps.Store.Pages(), nil
}

func (s *plannerService) ExportAll(ctx context.Context) (export.Workbook, error) {
	snap := s.deps.Store.Snapshot()

	days := make([]excel.DayData, 0, len(snap.Events))
	for _, ev := range snap.Events {
		posts := snap.EventPosts(ev)
		if len(posts) == 0 {
			continue
		}
		days = append(days, excel.DayData{
			Date:  ev.DateKey(),
			Posts: posts,
			Pages: pagesOf(snap.Pages, posts),
		})
	}

	return s.render(ctx, snap.Revision, "all", excel.ExportData{
		Pages: snap.Pages,
		Posts: snap.Posts,
		Days:  days,
	})
}

func (s *plannerService) ExportDay(ctx context.Context, date string) (export.Workbook, error) {
	if err := validations.ValidateDate(ctx, date); err != nil {
		return export.Workbook{}, err
	}

	snap := s.deps.Store.Snapshot()
	posts := application.PostsOn(snap.Posts, date)
	if len(posts) == 0 {
		return export.Workbook{}, pkgError.NotFoundError(fmt.Sprintf("no posts scheduled on %s", date))
	}

	return s.render(ctx, snap.Revision, date, excel.ExportData{
		Pages: snap.Pages,
		Posts: posts,
		Days:  []excel.DayData{{Date: date, Posts: posts, Pages: snap.Pages}},
	})
}

// render serves a workbook from the cache when the store revision it was
// built from is still current.
func (s *plannerService) render(ctx context.Context, revision uint64, scope string, data excel.ExportData) (export.Workbook, error) {
	key := s.id + ":" + strconv.FormatUint(revision, 10) + ":" + scope

	if s.deps.Cache != nil {
		cached, err := s.deps.Cache.Get(ctx, key)
		if err != nil {
			logrus.Warnf("[EXPORT] %s cache read failed, rendering: %v", s.deps.Cache.Name(), err)
		} else if cached != nil {
			logrus.Debugf("[EXPORT] cache hit for %s", key)
			return export.Workbook{FileName: s.deps.Writer.FileName(), Data: cached, Sheets: 1 + countDaysWithPosts(data.Days)}, nil
		}
	}

	wb, err := s.deps.Writer.Render(data)
	if err != nil {
		logrus.Errorf("[EXPORT] failed to render workbook %s: %v", scope, err)
		return export.Workbook{}, pkgError.InternalServerError("failed to export calendar")
	}

	if s.deps.Cache != nil {
		if err := s.deps.Cache.Set(ctx, key, wb.Data, s.deps.CacheTTL); err != nil {
			logrus.Warnf("[EXPORT] %s cache write failed: %v", s.deps.Cache.Name(), err)
		}
	}

	logrus.Infof("[EXPORT] Exported %s (%d sheets)", wb.FileName, wb.Sheets)
	return wb, nil
}

func (s *plannerService) notify(code, message string, result any) {
	if s.deps.Notifier == nil {
		return
	}
	s.deps.Notifier.Notify(code, message, result)
}

func pagesOf(pages []page.Page, posts []post.Post) []page.Page {
	used := make(map[int]bool, len(posts))
	for _, p := range posts {
		used[p.PageID] = true
	}
	out := make([]page.Page, 0, len(used))
	for _, pg := range pages {
		if used[pg.ID] {
			out = append(out, pg)
		}
	}
	return out
}

func countDaysWithPosts(days []excel.DayData) int {
	n := 0
	for _, d := range days {
		if len(d.Posts) > 0 {
			n++
		}
	}
	return n
}

func dedupe(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
