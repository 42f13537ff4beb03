package middleware

import (
	"log"

	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader is the single designated header carrying the bearer token.
const TokenHeader = "x-access-token"

// currentUserKey is the Locals key under which the resolved user is
// injected for downstream handlers.
const currentUserKey = "currentUser"

// CurrentUser returns the user injected by AuthRequired or AdminRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

// AuthRequired is a Fiber middleware that resolves the request's bearer
// token to an existing user and injects it into the context. Any failure
// (missing, malformed or expired token, or a subject that no longer
// exists) yields 401 with a generic message.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get(TokenHeader)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token is missing",
			})
		}

		user, err := authService.ResolveUser(tokenString)
		if err != nil {
			log.Printf("Token resolution failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// AdminRequired performs the same resolution as AuthRequired and then
// additionally rejects non-admin users with 403. Authentication and
// authorization failures stay distinguished: a valid token without the
// admin flag is never reported as 401.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get(TokenHeader)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token is missing",
			})
		}

		user, err := authService.ResolveUser(tokenString)
		if err != nil {
			log.Printf("Token resolution failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}
