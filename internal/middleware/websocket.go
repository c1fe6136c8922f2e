package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade lets through only websocket upgrade requests from
// authenticated users, keeping what the handler needs in Locals.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if c.Locals("username") == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Error: unauthorized",
			})
		}

		// params are not reachable from the websocket.Conn after upgrade
		c.Locals("gameID", c.Params("gameId"))
		return c.Next()
	}
}
