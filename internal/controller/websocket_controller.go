package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	userService *service.UserService
	logger      *log.Logger
}

func NewWebSocketController(gameService *service.GameService, userService *service.UserService, logger *log.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		userService: userService,
		logger:      logger,
	}
}

// HandleConnection runs the read loop of one game socket.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Locals("gameID").(string)
	username := c.Locals("username").(string)
	logger := wsc.logger.With("game", gameID, "user", username)
	logger.Debug("socket opened")

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("socket closed", "err", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var cmd ws.Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			wsc.gameService.SendError(gameID, c, fmt.Errorf("%w: malformed command", service.ErrBadRequest))
			continue
		}
		if err := wsc.handleCommand(c, gameID, username, cmd); err != nil {
			logger.Debug("command rejected", "command", cmd.CommandType, "err", err)
			wsc.gameService.SendError(gameID, c, err)
		}
		if cmd.CommandType == ws.CommandLeave {
			break
		}
	}

	wsc.gameService.Disconnect(gameID, c)
}

func (wsc *WebSocketController) handleCommand(conn ws.Conn, gameID, username string, cmd ws.Command) error {
	if cmd.AuthToken != "" {
		name, err := wsc.userService.Authenticate(cmd.AuthToken)
		if err != nil {
			return err
		}
		if name != username {
			return service.ErrUnauthorized
		}
	}
	if cmd.GameID != "" && cmd.GameID != gameID {
		return fmt.Errorf("%w: command is for another game", service.ErrBadRequest)
	}

	switch cmd.CommandType {
	case ws.CommandConnect:
		return wsc.gameService.Connect(gameID, username, conn)
	case ws.CommandMakeMove:
		if cmd.Move == nil {
			return fmt.Errorf("%w: missing move", service.ErrBadRequest)
		}
		return wsc.gameService.MakeMove(gameID, username, *cmd.Move, conn)
	case ws.CommandResign:
		return wsc.gameService.Resign(gameID, username)
	case ws.CommandLeave:
		return wsc.gameService.Leave(gameID, username, conn)
	}
	return fmt.Errorf("%w: unknown command type %q", service.ErrBadRequest, cmd.CommandType)
}

// HandleMatchmaking queues the user and writes the match once it is found.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	username := c.Locals("username").(string)
	logger := wsc.logger.With("user", username)

	matches := make(chan model.MatchFoundEvent, 1)
	wsc.gameService.RegisterMatchmakingChannel(username, matches)
	defer wsc.gameService.UnregisterMatchmakingChannel(username, matches)

	// joining over HTTP first is fine
	if err := wsc.gameService.JoinMatchmaking(username); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		c.WriteJSON(ws.Error(service.ErrorMessage(err)))
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event := <-matches:
		logger.Debug("sending match", "game", event.GameID, "color", event.Color)
		if err := c.WriteJSON(ws.MatchFound(event)); err != nil {
			logger.Warn("failed to send match", "err", err)
		}
	case <-closed:
		logger.Debug("left matchmaking")
		wsc.gameService.LeaveMatchmaking(username)
	}
}
