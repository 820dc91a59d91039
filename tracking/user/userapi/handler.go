package userapi

import (
	"github.com/acamacho/jobtrail/pkg/auth"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/user"
	"github.com/acamacho/jobtrail/tracking/user/usersrv"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for user operations
type Handlers struct {
	service  *usersrv.UserService
	tokens   *auth.TokenService
	validate *validator.Validate
}

// NewHandlers creates a new user handlers instance
func NewHandlers(service *usersrv.UserService, tokens *auth.TokenService) *Handlers {
	return &Handlers{
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// ListUsers retrieves all users
// GET /api/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(users)
}

// CreateUser creates a new user
// POST /api/users
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var req user.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return user.ErrInvalidRequest().WithDetail("validation_error", err.Error())
	}

	newUser, err := h.service.CreateUser(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newUser)
}

// DeleteUser deletes a user and all their applications
// DELETE /api/users/:id
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("id"))
	if userID.IsEmpty() {
		return user.ErrInvalidRequest().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteUser(c.Context(), userID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User and all associated applications deleted",
	})
}

// IssueToken exchanges a known user email for a bearer token
// POST /auth/token
func (h *Handlers) IssueToken(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.validate.Struct(req); err != nil {
		return user.ErrInvalidRequest().WithDetail("validation_error", err.Error())
	}

	u, err := h.service.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		return err
	}

	token, err := h.tokens.Generate(u.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"user_id": u.ID,
	})
}

// RegisterRoutes registers all user routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	app.Post("/auth/token", handlers.IssueToken)

	api := app.Group("/api/users")

	api.Get("/", handlers.ListUsers)
	api.Post("/", authMiddleware.Require(), handlers.CreateUser)
	api.Delete("/:id", authMiddleware.Require(), handlers.DeleteUser)
}
