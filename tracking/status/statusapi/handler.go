package statusapi

import (
	"github.com/acamacho/jobtrail/pkg/auth"
	"github.com/acamacho/jobtrail/tracking/status"
	"github.com/acamacho/jobtrail/tracking/status/statussrv"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for status operations
type Handlers struct {
	service  *statussrv.StatusService
	validate *validator.Validate
}

// NewHandlers creates a new status handlers instance
func NewHandlers(service *statussrv.StatusService) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// ListStatuses retrieves all statuses
// GET /api/statuses
func (h *Handlers) ListStatuses(c *fiber.Ctx) error {
	statuses, err := h.service.ListStatuses(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(statuses)
}

// CreateStatus creates a new status
// POST /api/statuses
func (h *Handlers) CreateStatus(c *fiber.Ctx) error {
	var req status.CreateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return status.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return status.ErrInvalidRequest().WithDetail("validation_error", err.Error())
	}

	newStatus, err := h.service.CreateStatus(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newStatus)
}

// RegisterRoutes registers all status routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/statuses")

	api.Get("/", handlers.ListStatuses)
	api.Post("/", authMiddleware.Require(), handlers.CreateStatus)
}
