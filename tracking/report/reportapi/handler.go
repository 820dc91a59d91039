package reportapi

import (
	"github.com/acamacho/jobtrail/tracking/report/reportsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for report operations
type Handlers struct {
	service *reportsrv.ReportService
}

// NewHandlers creates a new report handlers instance
func NewHandlers(service *reportsrv.ReportService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ApplicationsByDate retrieves applications within a date range, both bounds
// required
// GET /api/reports/applications-by-date?startDate=&endDate=
func (h *Handlers) ApplicationsByDate(c *fiber.Ctx) error {
	applications, err := h.service.GetApplicationsByDateRange(
		c.Context(),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// Statistics retrieves per-status counts for the filtered applications
// GET /api/reports/statistics?user=&company=&status=&dateFrom=&dateTo=
func (h *Handlers) Statistics(c *fiber.Ctx) error {
	statistics, err := h.service.GetApplicationStatistics(c.Context(), filtersFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(statistics)
}

// PositionStatistics retrieves per-position counts and percentages
// GET /api/reports/position-statistics?user=&company=&status=&dateFrom=&dateTo=
func (h *Handlers) PositionStatistics(c *fiber.Ctx) error {
	statistics, err := h.service.GetPositionStatistics(c.Context(), filtersFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(statistics)
}

// SimplePositionCounts retrieves unfiltered global position counts
// GET /api/reports/simple-position-counts
func (h *Handlers) SimplePositionCounts(c *fiber.Ctx) error {
	counts, err := h.service.GetSimplePositionCounts(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(counts)
}

// ApplicationTimeline retrieves applications grouped by calendar month
// GET /api/reports/application-timeline?userId=
func (h *Handlers) ApplicationTimeline(c *fiber.Ctx) error {
	timeline, err := h.service.GetApplicationTimeline(c.Context(), c.Query("userId"))
	if err != nil {
		return err
	}

	return c.JSON(timeline)
}

// StatusSummary retrieves the per-status rollup with example applications
// GET /api/reports/status-summary
func (h *Handlers) StatusSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetStatusSummary(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(summary)
}

// Trends retrieves application volume per time period
// GET /api/reports/trends?timeFrame=day|week|month|year
func (h *Handlers) Trends(c *fiber.Ctx) error {
	trends, err := h.service.GetApplicationTrends(c.Context(), c.Query("timeFrame"))
	if err != nil {
		return err
	}

	return c.JSON(trends)
}

func filtersFromQuery(c *fiber.Ctx) map[string]string {
	return map[string]string{
		"user":           c.Query("user"),
		"company":        c.Query("company"),
		"status":         c.Query("status"),
		"dateFrom":       c.Query("dateFrom"),
		"dateTo":         c.Query("dateTo"),
		"position_title": c.Query("position_title"),
	}
}

// RegisterRoutes registers all report routes. Reports are read-only
// aggregates and stay public.
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/reports")

	api.Get("/applications-by-date", handlers.ApplicationsByDate)
	api.Get("/statistics", handlers.Statistics)
	api.Get("/position-statistics", handlers.PositionStatistics)
	api.Get("/simple-position-counts", handlers.SimplePositionCounts)
	api.Get("/application-timeline", handlers.ApplicationTimeline)
	api.Get("/status-summary", handlers.StatusSummary)
	api.Get("/trends", handlers.Trends)
}
