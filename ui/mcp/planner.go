package mcp

import (
	"context"
	"fmt"
	"strings"

	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type PlannerHandler struct {
	plannerService domainPlanner.IPlannerUsecase
}

func InitMcpPlanner(plannerService domainPlanner.IPlannerUsecase) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

func (h *PlannerHandler) AddPlannerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(h.toolRandomDates(), h.handleRandomDates)
	mcpServer.AddTool(h.toolGenerateCalendar(), h.handleGenerateCalendar)
	mcpServer.AddTool(h.toolGetStats(), h.handleGetStats)
	mcpServer.AddTool(h.toolDayDetail(), h.handleDayDetail)
}

func (h *PlannerHandler) toolRandomDates() mcp.Tool {
	return mcp.NewTool(
		"planner_random_dates",
		mcp.WithDescription("Pick distinct random dates inside a month and make them the current selection."),
		mcp.WithTitleAnnotation("Random Dates"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithNumber("count", mcp.Description("How many dates to pick. Defaults to the session date count.")),
		mcp.WithNumber("year", mcp.Description("Calendar year. Defaults to the visible month.")),
		mcp.WithNumber("month", mcp.Description("Month 1-12. Defaults to the visible month.")),
	)
}

func (h *PlannerHandler) handleRandomDates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := h.plannerService.GenerateRandomDates(ctx, domainPlanner.RandomDatesRequest{
		Count: request.GetInt("count", 0),
		Year:  request.GetInt("year", 0),
		Month: request.GetInt("month", 0),
	})
	if err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("Selected %d dates: %s", len(resp.Dates), strings.Join(resp.Dates, ", "))
	return mcp.NewToolResultStructured(resp, fallback), nil
}

func (h *PlannerHandler) toolGenerateCalendar() mcp.Tool {
	return mcp.NewTool(
		"planner_generate_calendar",
		mcp.WithDescription("Generate synthetic posts for the selected dates. Regenerating a date replaces its posts."),
		mcp.WithTitleAnnotation("Generate Calendar"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithString("dates",
			mcp.Description("Comma separated YYYY-MM-DD dates. When empty the current selection is used."),
		),
	)
}

func (h *PlannerHandler) handleGenerateCalendar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if raw := strings.TrimSpace(request.GetString("dates", "")); raw != "" {
		if _, err := h.plannerService.SelectDates(ctx, domainPlanner.SelectDatesRequest{Dates: splitDates(raw)}); err != nil {
			return nil, err
		}
	}

	resp, err := h.plannerService.GenerateCalendar(ctx)
	if err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("%s: %d posts across %d dates", resp.Message, resp.TotalPosts, len(resp.Events))
	return mcp.NewToolResultStructured(resp, fallback), nil
}

func (h *PlannerHandler) toolGetStats() mcp.Tool {
	return mcp.NewTool(
		"planner_get_stats",
		mcp.WithDescription("Return global calendar statistics and per-category averages."),
		mcp.WithTitleAnnotation("Calendar Stats"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (h *PlannerHandler) handleGetStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := h.plannerService.Stats(ctx)
	if err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("%d posts on %d pages, %d%% coverage",
		resp.Global.TotalPosts, resp.Global.TotalPages, resp.Global.CoveragePercent)
	return mcp.NewToolResultStructured(resp, fallback), nil
}

func (h *PlannerHandler) toolDayDetail() mcp.Tool {
	return mcp.NewTool(
		"planner_day_detail",
		mcp.WithDescription("List the posts scheduled on one date with their page and metrics."),
		mcp.WithTitleAnnotation("Day Detail"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("date",
			mcp.Description("The date in YYYY-MM-DD format."),
			mcp.Required(),
		),
	)
}

func (h *PlannerHandler) handleDayDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return nil, err
	}

	detail, err := h.plannerService.DayDetail(ctx, date)
	if err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("%d posts on %s", len(detail.Posts), detail.Date)
	return mcp.NewToolResultStructured(detail, fallback), nil
}

func splitDates(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
