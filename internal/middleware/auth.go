package middleware

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves an auth token to a username.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// RequireAuth reads the token from the authorization header, falling back to
// the token query parameter for websocket clients, and stores the username
// in Locals("username").
func RequireAuth(auth Authenticator, logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("username") != nil {
			return c.Next()
		}

		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			token = c.Query("token")
		}

		username, err := auth.Authenticate(token)
		if err != nil {
			logger.Debug("rejected request", "path", c.Path(), "err", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Error: unauthorized",
			})
		}

		c.Locals("username", username)
		c.Locals("authToken", token)
		return c.Next()
	}
}
