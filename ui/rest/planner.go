package rest

import (
	"fmt"
	"strconv"

	"github.com/AzielCF/az-planner/calendar/domain/export"
	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	pkgError "github.com/AzielCF/az-planner/pkg/error"
	"github.com/AzielCF/az-planner/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Planner struct {
	Service domainPlanner.IPlannerUsecase
}

func InitRestPlanner(app fiber.Router, service domainPlanner.IPlannerUsecase) Planner {
	rest := Planner{Service: service}

	app.Get("/pages", rest.Pages)

	calendar := app.Group("/calendar")
	calendar.Get("/settings", rest.GetSettings)
	calendar.Put("/settings", rest.UpdateSettings)
	calendar.Post("/selection/toggle", rest.ToggleDate)
	calendar.Put("/selection", rest.SelectDates)
	calendar.Delete("/selection", rest.ClearSelection)
	calendar.Post("/random-dates", rest.RandomDates)
	calendar.Post("/generate", rest.Generate)
	calendar.Get("/month", rest.Month)
	calendar.Get("/days/:date", rest.DayDetail)
	calendar.Get("/stats", rest.Stats)

	app.Get("/export", rest.ExportAll)
	app.Get("/export/:date", rest.ExportDay)
	return rest
}

func parseBody(c *fiber.Ctx, out any) {
	if len(c.Body()) == 0 {
		return
	}
	if err := c.BodyParser(out); err != nil {
		utils.PanicIfNeeded(pkgError.ValidationError(fmt.Sprintf("invalid request body: %v", err)))
	}
}

func success(c *fiber.Ctx, message string, results any) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: message,
		Results: results,
	})
}

func (controller *Planner) Pages(c *fiber.Ctx) error {
	pages, err := controller.Service.Pages(c.UserContext())
	utils.PanicIfNeeded(err)
	return success(c, "Success fetch pages", pages)
}

func (controller *Planner) GetSettings(c *fiber.Ctx) error {
	settings, err := controller.Service.GetSettings(c.UserContext())
	utils.PanicIfNeeded(err)
	return success(c, "Success fetch settings", settings)
}

func (controller *Planner) UpdateSettings(c *fiber.Ctx) error {
	var request domainPlanner.UpdateSettingsRequest
	parseBody(c, &request)

	settings, err := controller.Service.UpdateSettings(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return success(c, "Success update settings", settings)
}

func (controller *Planner) ToggleDate(c *fiber.Ctx) error {
	var request domainPlanner.ToggleDateRequest
	parseBody(c, &request)

	settings, err := controller.Service.ToggleDate(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return success(c, "Success toggle date", settings)
}

func (controller *Planner) SelectDates(c *fiber.Ctx) error {
	var request domainPlanner.SelectDatesRequest
	parseBody(c, &request)

	settings, err := controller.Service.SelectDates(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return success(c, "Success select dates", settings)
}

func (controller *Planner) ClearSelection(c *fiber.Ctx) error {
	settings, err := controller.Service.ClearSelection(c.UserContext())
	utils.PanicIfNeeded(err)
	return success(c, "Success clear selection", settings)
}

func (controller *Planner) RandomDates(c *fiber.Ctx) error {
	var request domainPlanner.RandomDatesRequest
	parseBody(c, &request)

	resp, err := controller.Service.GenerateRandomDates(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return success(c, fmt.Sprintf("Generated %d random dates", len(resp.Dates)), resp)
}

func (controller *Planner) Generate(c *fiber.Ctx) error {
	resp, err := controller.Service.GenerateCalendar(c.UserContext())
	utils.PanicIfNeeded(err)
	return success(c, resp.Message, resp)
}

func (controller *Planner) Month(c *fiber.Ctx) error {
	var request domainPlanner.MonthRequest
	if err := c.QueryParser(&request); err != nil {
		utils.PanicIfNeeded(pkgError.ValidationError(fmt.Sprintf("invalid query: %v", err)))
	}

	resp, err := controller.Service.Month(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return success(c, "Success fetch month", resp)
}

func (controller *Planner) DayDetail(c *fiber.Ctx) error {
	detail, err := controller.Service.DayDetail(c.UserContext(), c.Params("date"))
	utils.PanicIfNeeded(err)
	return success(c, "Success fetch day", detail)
}

func (controller *Planner) Stats(c *fiber.Ctx) error {
	stats, err := controller.Service.Stats(c.UserContext())
	utils.PanicIfNeeded(err)
	return success(c, "Success fetch stats", stats)
}

func (controller *Planner) ExportAll(c *fiber.Ctx) error {
	wb, err := controller.Service.ExportAll(c.UserContext())
	utils.PanicIfNeeded(err)
	return sendWorkbook(c, wb)
}

func (controller *Planner) ExportDay(c *fiber.Ctx) error {
	wb, err := controller.Service.ExportDay(c.UserContext(), c.Params("date"))
	utils.PanicIfNeeded(err)
	return sendWorkbook(c, wb)
}

func sendWorkbook(c *fiber.Ctx, wb export.Workbook) error {
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, wb.FileName))
	c.Set("X-Workbook-Sheets", strconv.Itoa(wb.Sheets))
	return c.Send(wb.Data)
}
