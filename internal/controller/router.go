package controller

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-server/internal/middleware"
	"github.com/benbeisheim/chess-server/internal/service"
)

// NewApp builds the fiber app with every route mounted.
func NewApp(userService *service.UserService, gameService *service.GameService, allowedOrigins string, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chess-server",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, If-None-Match",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders:    "ETag",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(logger.WithPrefix("http")))

	userController := NewUserController(userService, logger)
	gameController := NewGameController(gameService, logger)
	wsController := NewWebSocketController(gameService, userService, logger.WithPrefix("ws"))
	requireAuth := middleware.RequireAuth(userService, logger)

	app.Post("/user", userController.Register)
	app.Post("/session", userController.Login)
	app.Delete("/session", requireAuth, userController.Logout)
	app.Delete("/db", gameController.Clear)

	gameRoutes := app.Group("/game", requireAuth)
	gameRoutes.Get("/", gameController.ListGames)
	gameRoutes.Post("/", gameController.CreateGame)
	gameRoutes.Put("/", gameController.JoinGame)
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Get("/:gameId", gameController.GetGame)
	gameRoutes.Get("/:gameId/board", gameController.Board)
	gameRoutes.Get("/:gameId/board.svg", gameController.BoardSVG)

	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	wsRoutes := app.Group("/ws", requireAuth)
	wsRoutes.Get("/matchmaking", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleMatchmaking, wsConfig))
	wsRoutes.Get("/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, wsConfig))

	return app
}
