package applicationapi

import (
	"github.com/acamacho/jobtrail/pkg/auth"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/application"
	"github.com/acamacho/jobtrail/tracking/application/applicationsrv"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service  *applicationsrv.ApplicationService
	validate *validator.Validate
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// ListApplications retrieves a page of applications with joined user,
// company and status fields
// GET /api/applications?page=&page_size=
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	applications, err := h.service.ListApplications(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// GetApplication retrieves a single application with its related entities
// GET /api/applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	appID, err := parseApplicationID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetApplicationDetail(c.Context(), appID)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// CreateApplication creates a new application
// POST /api/applications
func (h *Handlers) CreateApplication(c *fiber.Ctx) error {
	var req application.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return application.ErrInvalidRequest().WithDetail("validation_error", err.Error())
	}

	newApplication, err := h.service.CreateApplication(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newApplication)
}

// UpdateApplication applies a partial update to an application
// PATCH /api/applications/:id
func (h *Handlers) UpdateApplication(c *fiber.Ctx) error {
	appID, err := parseApplicationID(c)
	if err != nil {
		return err
	}

	var req application.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return application.ErrInvalidRequest().WithDetail("validation_error", err.Error())
	}

	updated, err := h.service.UpdateApplication(c.Context(), appID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteApplication deletes an application
// DELETE /api/applications/:id
func (h *Handlers) DeleteApplication(c *fiber.Ctx) error {
	appID, err := parseApplicationID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteApplication(c.Context(), appID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Application deleted",
	})
}

// TransferApplication reassigns an application to another user inside a
// transaction with a caller-selected isolation profile
// POST /api/applications/:id/transfer
func (h *Handlers) TransferApplication(c *fiber.Ctx) error {
	appID, err := parseApplicationID(c)
	if err != nil {
		return err
	}

	var req application.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return application.ErrInvalidRequest().WithDetail("validation_error", err.Error())
	}

	transferred, err := h.service.TransferOwnership(c.Context(), appID, req)
	if err != nil {
		return err
	}

	return c.JSON(transferred)
}

// BulkUpdateApplications applies a batch of updates atomically
// POST /api/applications/bulk-update
func (h *Handlers) BulkUpdateApplications(c *fiber.Ctx) error {
	var req application.BulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return application.ErrInvalidRequest().WithDetail("validation_error", err.Error())
	}

	result, err := h.service.BulkUpdate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func parseApplicationID(c *fiber.Ctx) (kernel.ApplicationID, error) {
	id, err := kernel.ParseID(c.Params("id"))
	if err != nil {
		return "", application.ErrInvalidFieldValue().WithDetail("field", "id").WithCause(err)
	}
	return kernel.ApplicationID(id), nil
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/applications")

	api.Get("/", handlers.ListApplications)
	api.Post("/", authMiddleware.Require(), handlers.CreateApplication)
	api.Post("/bulk-update", authMiddleware.Require(), handlers.BulkUpdateApplications)
	api.Get("/:id", handlers.GetApplication)
	api.Patch("/:id", authMiddleware.Require(), handlers.UpdateApplication)
	api.Delete("/:id", authMiddleware.Require(), handlers.DeleteApplication)
	api.Post("/:id/transfer", authMiddleware.Require(), handlers.TransferApplication)
}
