package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AzielCF/az-planner/calendar/application"
	"github.com/AzielCF/az-planner/calendar/domain/page"
	"github.com/AzielCF/az-planner/calendar/repository"
	coreconfig "github.com/AzielCF/az-planner/core/config"
	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	"github.com/AzielCF/az-planner/infrastructure/excel"
	pkgError "github.com/AzielCF/az-planner/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	codes []string
}

func (n *recordingNotifier) Notify(code, message string, result any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes = append(n.codes, code)
}

func (n *recordingNotifier) count(code string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, c := range n.codes {
		if c == code {
			total++
		}
	}
	return total
}

type countingCache struct {
	*repository.MemoryWorkbookCache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.MemoryWorkbookCache.Set(ctx, key, data, ttl)
}

func newTestPlanner(t *testing.T) (domainPlanner.IPlannerUsecase, *recordingNotifier, *countingCache) {
	t.Helper()
	rng := application.NewSeededSource(42)
	store := repository.NewMemoryCalendarStore(repository.DefaultRoster())
	notifier := &recordingNotifier{}
	cache := &countingCache{MemoryWorkbookCache: repository.NewMemoryWorkbookCache()}

	svc := NewPlannerService(PlannerDeps{
		Store:    store,
		Engine:   application.NewEngine(store, application.NewEstimator(rng)),
		Rand:     rng,
		Writer:   excel.NewWriter(),
		Cache:    cache,
		Notifier: notifier,
		Config:   coreconfig.PlannerConfig{PostsPerDate: 5, DateCount: 5, MinFollowersK: 500},
		Now:      func() time.Time { return time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC) },
	})
	return svc, notifier, cache
}

func TestPlanner_DefaultSettings(t *testing.T) {
	svc, _, _ := newTestPlanner(t)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, settings.SessionID)
	assert.Equal(t, page.Categories, settings.Categories)
	assert.Equal(t, int64(500), settings.MinFollowersK)
	assert.Equal(t, 5, settings.PostsPerDate)
	assert.Equal(t, 2024, settings.Year)
	assert.Equal(t, 3, settings.Month)
	assert.Empty(t, settings.SelectedDates)
}

func TestPlanner_GenerateWithoutSelectionIsRejected(t *testing.T) {
	svc, notifier, _ := newTestPlanner(t)
	ctx := context.Background()

	_, err := svc.GenerateCalendar(ctx)
	require.Error(t, err)
	assert.IsType(t, pkgError.ValidationError(""), err)
	assert.Equal(t, "Please select dates first", err.Error())
	assert.Zero(t, notifier.count(CodeCalendarGenerated))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Global.TotalPosts)
}

func TestPlanner_ToggleDate(t *testing.T) {
	svc, _, _ := newTestPlanner(t)
	ctx := context.Background()

	settings, err := svc.ToggleDate(ctx, domainPlanner.ToggleDateRequest{Date: "2024-03-05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-05"}, settings.SelectedDates)

	settings, err = svc.ToggleDate(ctx, domainPlanner.ToggleDateRequest{Date: "2024-03-12"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-05", "2024-03-12"}, settings.SelectedDates)

	settings, err = svc.ToggleDate(ctx, domainPlanner.ToggleDateRequest{Date: "2024-03-05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-12"}, settings.SelectedDates)

	_, err = svc.ToggleDate(ctx, domainPlanner.ToggleDateRequest{Date: "05/03/2024"})
	assert.Error(t, err)
}

func TestPlanner_SelectDatesDedupes(t *testing.T) {
	svc, _, _ := newTestPlanner(t)

	settings, err := svc.SelectDates(context.Background(), domainPlanner.SelectDatesRequest{
		Dates: []string{"2024-03-05", "2024-03-05", "2024-03-06"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-05", "2024-03-06"}, settings.SelectedDates)

	settings, err = svc.ClearSelection(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.SelectedDates)
}

func TestPlanner_GenerateCalendar(t *testing.T) {
	svc, notifier, _ := newTestPlanner(t)
	ctx := context.Background()

	_, err := svc.SelectDates(ctx, domainPlanner.SelectDatesRequest{Dates: []string{"2024-03-05", "2024-03-12"}})
	require.NoError(t, err)

	resp, err := svc.GenerateCalendar(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Calendar generated successfully", resp.Message)
	assert.Len(t, resp.Events, 2)
	assert.Equal(t, 10, resp.TotalPosts)
	assert.Equal(t, 10, resp.Stats.TotalPosts)
	assert.Equal(t, 1, notifier.count(CodeCalendarGenerated))

	// default floor of 500k leaves only pages at or above it
	detail, err := svc.DayDetail(ctx, "2024-03-05")
	require.NoError(t, err)
	require.Len(t, detail.Posts, 5)
	for _, dp := range detail.Posts {
		assert.GreaterOrEqual(t, dp.FollowerCount, int64(500000))
	}
}

func TestPlanner_UpdateSettingsDrivesGeneration(t *testing.T) {
	svc, _, _ := newTestPlanner(t)
	ctx := context.Background()

	categories := []string{string(page.CategoryMeme)}
	minK := int64(0)
	perDate := 3
	_, err := svc.UpdateSettings(ctx, domainPlanner.UpdateSettingsRequest{
		Categories:    &categories,
		MinFollowersK: &minK,
		PostsPerDate:  &perDate,
	})
	require.NoError(t, err)

	_, err = svc.ToggleDate(ctx, domainPlanner.ToggleDateRequest{Date: "2024-03-20"})
	require.NoError(t, err)

	resp, err := svc.GenerateCalendar(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalPosts)

	detail, err := svc.DayDetail(ctx, "2024-03-20")
	require.NoError(t, err)
	for _, dp := range detail.Posts {
		assert.Equal(t, page.CategoryMeme, dp.Category)
	}
}

func TestPlanner_UpdateSettingsRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestPlanner(t)

	categories := []string{"Sports"}
	_, err := svc.UpdateSettings(context.Background(), domainPlanner.UpdateSettingsRequest{Categories: &categories})
	assert.Error(t, err)

	settings, _ := svc.GetSettings(context.Background())
	assert.Equal(t, page.Categories, settings.Categories)
}

func TestPlanner_GenerateRandomDatesReplacesSelection(t *testing.T) {
	svc, _, _ := newTestPlanner(t)
	ctx := context.Background()

	_, err := svc.ToggleDate(ctx, domainPlanner.ToggleDateRequest{Date: "2024-01-01"})
	require.NoError(t, err)

	resp, err := svc.GenerateRandomDates(ctx, domainPlanner.RandomDatesRequest{Count: 40})
	require.NoError(t, err)
	assert.Len(t, resp.Dates, 31)

	settings, _ := svc.GetSettings(ctx)
	assert.Equal(t, resp.Dates, settings.SelectedDates)
	assert.NotContains(t, settings.SelectedDates, "2024-01-01")
}

func TestPlanner_DayDetailNotFound(t *testing.T) {
	svc, _, _ := newTestPlanner(t)

	_, err := svc.DayDetail(context.Background(), "2024-03-05")
	require.Error(t, err)
	assert.IsType(t, pkgError.NotFoundError(""), err)
}

func TestPlanner_Month(t *testing.T) {
	svc, _, _ := newTestPlanner(t)

	resp, err := svc.Month(context.Background(), domainPlanner.MonthRequest{Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Equal(t, 29, resp.DaysInMonth)
	assert.Equal(t, int(time.Thursday), resp.FirstWeekday)
}

func TestPlanner_ExportUsesCacheUntilRevisionChanges(t *testing.T) {
	svc, _, cache := newTestPlanner(t)
	ctx := context.Background()

	_, err := svc.SelectDates(ctx, domainPlanner.SelectDatesRequest{Dates: []string{"2024-03-05"}})
	require.NoError(t, err)
	_, err = svc.GenerateCalendar(ctx)
	require.NoError(t, err)

	first, err := svc.ExportAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first.Data)
	assert.Equal(t, 2, first.Sheets)

	second, err := svc.ExportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.GenerateCalendar(ctx)
	require.NoError(t, err)
	_, err = svc.ExportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}

func TestPlanner_ExportDay(t *testing.T) {
	svc, _, _ := newTestPlanner(t)
	ctx := context.Background()

	_, err := svc.ExportDay(ctx, "2024-03-05")
	assert.IsType(t, pkgError.NotFoundError(""), err)

	_, err = svc.SelectDates(ctx, domainPlanner.SelectDatesRequest{Dates: []string{"2024-03-05"}})
	require.NoError(t, err)
	_, err = svc.GenerateCalendar(ctx)
	require.NoError(t, err)

	wb, err := svc.ExportDay(ctx, "2024-03-05")
	require.NoError(t, err)
	assert.Contains(t, wb.FileName, "Social_Media_Calendar_")
	assert.NotEmpty(t, wb.Data)
}
