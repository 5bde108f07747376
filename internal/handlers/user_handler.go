package handlers

import (
	"log"

	"github.com/azat-nasyrov-dev/post-test-api/internal/middleware"
	"github.com/azat-nasyrov-dev/post-test-api/internal/models"
	"github.com/azat-nasyrov-dev/post-test-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for registration, login and the
// current user's profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. guard protects the routes that
// require a resolved identity.
func (h *UserHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Post("/users/register", h.HandleRegister)
	router.Post("/users/login", h.HandleLogin)
	router.Get("/user", guard, h.HandleCurrentUser)
	router.Put("/user", guard, h.HandleUpdateUser)
}

// RegisterUserInput is the payload of a registration request.
type RegisterUserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,max=12"`
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
}

// RegisterRequest is the registration request envelope.
type RegisterRequest struct {
	User RegisterUserInput `json:"user"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := &models.User{
		Email:    req.User.Email,
		Password: req.User.Password,
		Username: req.User.Username,
	}
	if err := h.userService.RegisterUser(user); err != nil {
		return respondError(c, err)
	}

	resp, err := h.userService.BuildUserResponse(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// LoginUserInput is the payload of a login request.
type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=12"`
}

// LoginRequest is the login request envelope.
type LoginRequest struct {
	User LoginUserInput `json:"user"`
}

// HandleLogin handles user login.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.userService.LoginUser(req.User.Email, req.User.Password)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.userService.BuildUserResponse(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleCurrentUser returns the authenticated user's profile.
func (h *UserHandler) HandleCurrentUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	resp, err := h.userService.BuildUserResponse(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateUserInput is the payload of a profile update request.
type UpdateUserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
}

// UpdateUserRequest is the profile update request envelope.
type UpdateUserRequest struct {
	User UpdateUserInput `json:"user"`
}

// HandleUpdateUser overwrites the authenticated user's email and username.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	currentUser := middleware.CurrentUser(c)
	user, err := h.userService.UpdateUser(currentUser.ID, req.User.Email, req.User.Username)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.userService.BuildUserResponse(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
