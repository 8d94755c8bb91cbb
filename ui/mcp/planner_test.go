package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/AzielCF/az-planner/calendar/application"
	"github.com/AzielCF/az-planner/calendar/repository"
	coreconfig "github.com/AzielCF/az-planner/core/config"
	"github.com/AzielCF/az-planner/infrastructure/excel"
	"github.com/AzielCF/az-planner/usecase"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *PlannerHandler {
	rng := application.NewSeededSource(3)
	store := repository.NewMemoryCalendarStore(repository.DefaultRoster())
	svc := usecase.NewPlannerService(usecase.PlannerDeps{
		Store:  store,
		Engine: application.NewEngine(store, application.NewEstimator(rng)),
		Rand:   rng,
		Writer: excel.NewWriter(),
		Config: coreconfig.PlannerConfig{PostsPerDate: 4, DateCount: 5},
		Now:    func() time.Time { return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC) },
	})
	return InitMcpPlanner(svc)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestSplitDates(t *testing.T) {
	assert.Equal(t, []string{"2024-03-05", "2024-03-06"}, splitDates(" 2024-03-05, ,2024-03-06,"))
	assert.Empty(t, splitDates(""))
}

func TestHandleGenerateCalendar_WithDates(t *testing.T) {
	h := newTestHandler()
	ctx := context.Background()

	res, err := h.handleGenerateCalendar(ctx, callRequest(map[string]any{"dates": "2024-03-05,2024-03-06"}))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.IsError)

	detail, err := h.handleDayDetail(ctx, callRequest(map[string]any{"date": "2024-03-05"}))
	require.NoError(t, err)
	assert.NotNil(t, detail.StructuredContent)
}

func TestHandleGenerateCalendar_NoSelection(t *testing.T) {
	h := newTestHandler()

	_, err := h.handleGenerateCalendar(context.Background(), callRequest(map[string]any{}))
	assert.EqualError(t, err, "Please select dates first")
}

func TestHandleDayDetail_RequiresDate(t *testing.T) {
	h := newTestHandler()

	_, err := h.handleDayDetail(context.Background(), callRequest(map[string]any{}))
	assert.Error(t, err)
}

func TestHandleRandomDates(t *testing.T) {
	h := newTestHandler()

	res, err := h.handleRandomDates(context.Background(), callRequest(map[string]any{"count": float64(3)}))
	require.NoError(t, err)
	assert.NotNil(t, res.StructuredContent)
}
