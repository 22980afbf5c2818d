package middleware

import (
	"strings"

	"studyforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// Protected requires a valid JWT and stores the user id in the request
// context locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		userID, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
