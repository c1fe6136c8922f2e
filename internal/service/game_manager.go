// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/storage"
)

// GameManager owns access to stored games and the matchmaking queue.
// Every read-modify-write of one game runs under that game's lock.
type GameManager struct {
	store            storage.Store
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	locks            map[string]*sync.Mutex
	mu               sync.RWMutex
	logger           *log.Logger
}

func NewGameManager(store storage.Store, logger *log.Logger) *GameManager {
	return &GameManager{
		store:            store,
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
		locks:            make(map[string]*sync.Mutex),
		logger:           logger,
	}
}

func (gm *GameManager) lockFor(gameID string) *sync.Mutex {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	l, ok := gm.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		gm.locks[gameID] = l
	}
	return l
}

// WithGame loads the game, runs fn on it and saves it if fn succeeds.
func (gm *GameManager) WithGame(gameID string, fn func(game *model.GameData) error) error {
	return gm.WithGameSaved(gameID, fn, nil)
}

// WithGameSaved is WithGame with a hook that runs after the save, still under
// the game's lock, so what saved publishes for one game follows commit order.
func (gm *GameManager) WithGameSaved(gameID string, fn func(game *model.GameData) error, saved func(game model.GameData)) error {
	l := gm.lockFor(gameID)
	l.Lock()
	defer l.Unlock()

	game, err := gm.store.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := fn(&game); err != nil {
		return err
	}
	if err := gm.store.UpdateGame(game); err != nil {
		return err
	}
	if saved != nil {
		saved(game)
	}
	return nil
}

func (gm *GameManager) CreateGame(name string) (string, error) {
	gameID := uuid.New().String()
	if err := gm.store.CreateGame(model.NewGameData(gameID, name)); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gm *GameManager) GetGame(gameID string) (model.GameData, error) {
	return gm.store.GetGame(gameID)
}

func (gm *GameManager) ListGames() ([]model.GameData, error) {
	return gm.store.ListGames()
}

// Clear drops all stored data along with the queue.
func (gm *GameManager) Clear() error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.queue = model.NewQueue()
	gm.locks = make(map[string]*sync.Mutex)
	return gm.store.Clear()
}

func (gm *GameManager) JoinMatchmaking(username string) error {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	if err := gm.queue.AddPlayer(username); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	gm.logger.Debug("queued for matchmaking", "user", username, "waiting", gm.queue.Size())
	return nil
}

func (gm *GameManager) LeaveMatchmaking(username string) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	gm.queue.RemovePlayer(username)
}

// RegisterMatchmakingChannel sets where the match for username is delivered.
// ch should have room for one event.
func (gm *GameManager) RegisterMatchmakingChannel(username string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.matchingChannels[username] = ch
}

func (gm *GameManager) UnregisterMatchmakingChannel(username string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.matchingChannels[username] == ch {
		delete(gm.matchingChannels, username)
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			gm.logger.Info("matchmaking stopped")
			return
		case <-ticker.C:
			gm.processMatchmaking()
		}
	}
}

func (gm *GameManager) processMatchmaking() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		white, black, ok := gm.queue.GetNextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := model.NewGameData(gameID, fmt.Sprintf("%s vs %s", white, black))
		game.WhiteUsername = white
		game.BlackUsername = black
		if err := gm.store.CreateGame(game); err != nil {
			gm.logger.Error("failed to create matched game", "white", white, "black", black, "err", err)
			continue
		}
		gm.logger.Info("match found", "game", gameID, "white", white, "black", black)

		gm.notifyMatch(white, model.MatchFoundEvent{GameID: gameID, Color: chess.White})
		gm.notifyMatch(black, model.MatchFoundEvent{GameID: gameID, Color: chess.Black})
	}
}

func (gm *GameManager) notifyMatch(username string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[username]
	if !ok {
		return
	}
	delete(gm.matchingChannels, username)

	select {
	case ch <- event:
	default:
		gm.logger.Warn("failed to send match event", "user", username)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
