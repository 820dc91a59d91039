package companyapi

import (
	"github.com/acamacho/jobtrail/pkg/auth"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/company"
	"github.com/acamacho/jobtrail/tracking/company/companysrv"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for company operations
type Handlers struct {
	service  *companysrv.CompanyService
	validate *validator.Validate
}

// NewHandlers creates a new company handlers instance
func NewHandlers(service *companysrv.CompanyService) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// ListCompanies retrieves all companies
// GET /api/companies
func (h *Handlers) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.service.ListCompanies(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(companies)
}

// CreateCompany creates a new company
// POST /api/companies
func (h *Handlers) CreateCompany(c *fiber.Ctx) error {
	var req company.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return company.ErrInvalidRequest().WithDetail("validation_error", err.Error())
	}

	newCompany, err := h.service.CreateCompany(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newCompany)
}

// DeleteCompany deletes a company and all its applications
// DELETE /api/companies/:id
func (h *Handlers) DeleteCompany(c *fiber.Ctx) error {
	companyID := kernel.CompanyID(c.Params("id"))
	if companyID.IsEmpty() {
		return company.ErrInvalidRequest().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteCompany(c.Context(), companyID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Company and all associated applications deleted",
	})
}

// RegisterRoutes registers all company routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/companies")

	api.Get("/", handlers.ListCompanies)
	api.Post("/", authMiddleware.Require(), handlers.CreateCompany)
	api.Delete("/:id", authMiddleware.Require(), handlers.DeleteCompany)
}
