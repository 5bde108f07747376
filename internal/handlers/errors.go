package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/azat-nasyrov-dev/post-test-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errorStatus is the single mapping from domain error to HTTP status.
// Anything the table does not name is an internal server error.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrEmailOrUsernameTaken):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotAuthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotPostAuthor):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrPostNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUserNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError translates a service error into the API error envelope.
// Unexpected failures are logged server-side and reported with the fixed
// opaque message.
func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
		message = services.InternalServerErrorMessage
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// respondValidationError shapes validator failures as a per-field message
// map.
func respondValidationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return respondError(c, err)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
