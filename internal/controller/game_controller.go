package controller

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/codec"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/render"
	"github.com/benbeisheim/chess-server/internal/service"
)

type GameController struct {
	gameService *service.GameService
	logger      *log.Logger
}

func NewGameController(gameService *service.GameService, logger *log.Logger) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	games, err := gc.gameService.ListGames()
	if err != nil {
		return sendError(c, gc.logger, err)
	}
	return c.JSON(fiber.Map{"games": games})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req struct {
		GameName string `json:"gameName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, gc.logger, service.ErrBadRequest)
	}

	gameID, err := gc.gameService.CreateGame(req.GameName)
	if err != nil {
		return sendError(c, gc.logger, err)
	}
	gc.logger.Info("game created", "game", gameID, "name", req.GameName)
	return c.JSON(fiber.Map{"gameID": gameID})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	var req struct {
		PlayerColor string `json:"playerColor"`
		GameID      string `json:"gameID"`
	}
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, gc.logger, service.ErrBadRequest)
	}

	username := c.Locals("username").(string)
	if err := gc.gameService.JoinGame(username, req.GameID, req.PlayerColor); err != nil {
		return sendError(c, gc.logger, err)
	}
	return c.JSON(fiber.Map{})
}

// GetGame returns the full game. The ETag changes whenever any of it does.
func (gc *GameController) GetGame(c *fiber.Ctx) error {
	game, err := gc.gameService.GetGame(c.Params("gameId"))
	if err != nil {
		return sendError(c, gc.logger, err)
	}

	body, err := json.Marshal(game)
	if err != nil {
		return sendError(c, gc.logger, err)
	}
	if notModified(c, fmt.Sprintf(`"%x"`, xxhash.Sum64(body))) {
		return nil
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// Board renders the board as text. select=e2 highlights where that piece can go.
func (gc *GameController) Board(c *fiber.Ctx) error {
	game, perspective, highlight, err := gc.boardRequest(c)
	if err != nil {
		return sendError(c, gc.logger, err)
	}

	color := c.QueryBool("color", true)
	state, err := boardState(game.Game, c.Query("select") != "")
	if err != nil {
		return sendError(c, gc.logger, err)
	}
	if notModified(c, fmt.Sprintf(`"%x-%s-%s-%t"`, state, perspective, c.Query("select"), color)) {
		return nil
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(render.Text(game.Game.Board(), perspective, highlight, color) + "\n")
}

func (gc *GameController) BoardSVG(c *fiber.Ctx) error {
	game, perspective, highlight, err := gc.boardRequest(c)
	if err != nil {
		return sendError(c, gc.logger, err)
	}

	state, err := boardState(game.Game, c.Query("select") != "")
	if err != nil {
		return sendError(c, gc.logger, err)
	}
	if notModified(c, fmt.Sprintf(`"%x-%s-%s"`, state, perspective, c.Query("select"))) {
		return nil
	}
	var buf bytes.Buffer
	render.SVG(&buf, game.Game.Board(), perspective, highlight)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (gc *GameController) boardRequest(c *fiber.Ctx) (model.GameData, chess.TeamColor, []chess.Position, error) {
	game, err := gc.gameService.GetGame(c.Params("gameId"))
	if err != nil {
		return model.GameData{}, "", nil, err
	}

	perspective := chess.White
	if v := c.Query("perspective"); v != "" {
		if perspective, err = chess.ParseTeamColor(v); err != nil {
			return model.GameData{}, "", nil, fmt.Errorf("%w: %v", service.ErrBadRequest, err)
		}
	}

	var highlight []chess.Position
	if v := c.Query("select"); v != "" {
		pos, err := chess.ParsePosition(v)
		if err != nil {
			return model.GameData{}, "", nil, fmt.Errorf("%w: %v", service.ErrBadRequest, err)
		}
		highlight = render.Destinations(game.Game, pos)
	}
	return game, perspective, highlight, nil
}

// boardState keys a rendering. Highlights depend on castling rights and the
// previous board, so a selection hashes the whole encoded game.
func boardState(g *chess.Game, selected bool) (uint64, error) {
	if !selected {
		return g.Board().Hash(), nil
	}
	data, err := codec.Marshal(g)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}

func notModified(c *fiber.Ctx, tag string) bool {
	c.Set(fiber.HeaderETag, tag)
	if c.Get(fiber.HeaderIfNoneMatch) == tag {
		c.Status(fiber.StatusNotModified)
		return true
	}
	return false
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	if err := gc.gameService.JoinMatchmaking(username); err != nil {
		return sendError(c, gc.logger, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) Clear(c *fiber.Ctx) error {
	if err := gc.gameService.Clear(); err != nil {
		return sendError(c, gc.logger, err)
	}
	gc.logger.Warn("database cleared")
	return c.JSON(fiber.Map{})
}
