package middleware

import (
	"strings"

	"github.com/azat-nasyrov-dev/post-test-api/internal/models"
	"github.com/azat-nasyrov-dev/post-test-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

// Authenticate resolves the request identity on a best-effort basis. A
// missing header, a malformed or invalid token, or a token naming a user
// that no longer exists all leave the request anonymous; the request is
// never rejected here. Rejection is the guard's job.
func Authenticate(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Next()
		}

		claims, err := userService.ValidateToken(parts[1])
		if err != nil {
			return c.Next()
		}

		id, ok := claims["id"].(string)
		if !ok {
			return c.Next()
		}

		user, err := userService.FindUserByID(id)
		if err != nil {
			return c.Next()
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// AuthRequired rejects requests that carry no resolved identity. Routes
// that do not require authentication simply omit it.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": services.ErrNotAuthorized.Error(),
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the identity resolved by Authenticate, or nil for an
// anonymous request.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
