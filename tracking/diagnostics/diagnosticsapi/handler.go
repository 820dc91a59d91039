package diagnosticsapi

import (
	"github.com/acamacho/jobtrail/pkg/auth"
	"github.com/acamacho/jobtrail/tracking/diagnostics"
	"github.com/acamacho/jobtrail/tracking/diagnostics/diagnosticssrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for query diagnostics
type Handlers struct {
	service *diagnosticssrv.AnalyzerService
}

// NewHandlers creates a new diagnostics handlers instance
func NewHandlers(service *diagnosticssrv.AnalyzerService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// QueryPlan analyzes how the database executes the given application filter
// GET /api/diagnostics/query-plan?user=&company=&status=&position_title=&dateFrom=&dateTo=
func (h *Handlers) QueryPlan(c *fiber.Ctx) error {
	predicate := diagnostics.Predicate{}
	for _, key := range []string{"user", "company", "status", "position_title", "dateFrom", "dateTo"} {
		if v := c.Query(key); v != "" {
			predicate[key] = v
		}
	}

	result := h.service.AnalyzeQuery(c.Context(), predicate)
	return c.JSON(result)
}

// RegisterRoutes registers all diagnostics routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/diagnostics")

	api.Get("/query-plan", authMiddleware.Require(), handlers.QueryPlan)
}
