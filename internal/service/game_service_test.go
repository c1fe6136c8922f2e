package service

import (
	"errors"
	"io"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/storage"
	"github.com/benbeisheim/chess-server/internal/ws"
)

type fakeConn struct {
	mu   sync.Mutex
	msgs []ws.ServerMessage
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, v.(ws.ServerMessage))
	return nil
}

func (c *fakeConn) last() ws.ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.msgs) == 0 {
		return ws.ServerMessage{}
	}
	return c.msgs[len(c.msgs)-1]
}

func (c *fakeConn) notifications() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, m := range c.msgs {
		if m.Type == ws.MessageNotification {
			out = append(out, m.Message)
		}
	}
	return out
}

func newGameService() *GameService {
	logger := log.New(io.Discard)
	return NewGameService(NewGameManager(storage.NewMemoryStore(), logger), ws.NewHub(logger), logger)
}

func mv(t *testing.T, s string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(s)
	require.NoError(t, err)
	return m
}

// seatedGame returns a game with ann as white and bob as black.
func seatedGame(t *testing.T, gs *GameService) string {
	t.Helper()
	gameID, err := gs.CreateGame("test")
	require.NoError(t, err)
	require.NoError(t, gs.JoinGame("ann", gameID, "WHITE"))
	require.NoError(t, gs.JoinGame("bob", gameID, "black"))
	return gameID
}

func TestCreateAndList(t *testing.T) {
	gs := newGameService()
	_, err := gs.CreateGame("")
	assert.ErrorIs(t, err, ErrBadRequest)

	gameID := seatedGame(t, gs)
	games, err := gs.ListGames()
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, gameID, games[0].GameID)
	assert.Equal(t, "ann", games[0].WhiteUsername)
	assert.Equal(t, "bob", games[0].BlackUsername)
}

func TestJoinGameRejects(t *testing.T) {
	gs := newGameService()
	gameID := seatedGame(t, gs)

	assert.ErrorIs(t, gs.JoinGame("eve", gameID, "WHITE"), storage.ErrAlreadyTaken)
	assert.ErrorIs(t, gs.JoinGame("eve", gameID, "PURPLE"), ErrBadRequest)
	assert.ErrorIs(t, gs.JoinGame("eve", "missing", "WHITE"), ErrBadRequest)
	assert.NoError(t, gs.JoinGame("ann", gameID, "WHITE"))
}

func TestConnectAnnouncesRole(t *testing.T) {
	gs := newGameService()
	gameID := seatedGame(t, gs)
	ann, eve := &fakeConn{}, &fakeConn{}

	require.NoError(t, gs.Connect(gameID, "ann", ann))
	assert.Equal(t, ws.MessageLoadGame, ann.last().Type)
	require.NotNil(t, ann.last().Game)
	assert.Equal(t, gameID, ann.last().Game.GameID)

	require.NoError(t, gs.Connect(gameID, "eve", eve))
	assert.Equal(t, []string{"eve has joined the game as an observer"}, ann.notifications())
	assert.Empty(t, eve.notifications())

	assert.ErrorIs(t, gs.Connect("missing", "ann", &fakeConn{}), ErrBadRequest)
}

func TestMakeMoveRules(t *testing.T) {
	gs := newGameService()
	gameID := seatedGame(t, gs)
	ann, bob, eve := &fakeConn{}, &fakeConn{}, &fakeConn{}
	require.NoError(t, gs.Connect(gameID, "ann", ann))
	require.NoError(t, gs.Connect(gameID, "bob", bob))
	require.NoError(t, gs.Connect(gameID, "eve", eve))

	err := gs.MakeMove(gameID, "eve", mv(t, "e2e4"), eve)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Error: observers cannot move", ErrorMessage(err))

	err = gs.MakeMove(gameID, "bob", mv(t, "e7e5"), bob)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, ErrorMessage(err), "not your turn")

	err = gs.MakeMove(gameID, "ann", mv(t, "e2e5"), ann)
	assert.ErrorIs(t, err, chess.ErrInvalidMove)
	assert.Equal(t, "Error: invalid move", ErrorMessage(err))

	require.NoError(t, gs.MakeMove(gameID, "ann", mv(t, "e2e4"), ann))
	assert.Equal(t, ws.MessageLoadGame, ann.last().Type)
	assert.Contains(t, bob.notifications(), "ann moved e2 to e4")
	assert.NotContains(t, ann.notifications(), "ann moved e2 to e4")

	game, err := gs.GetGame(gameID)
	require.NoError(t, err)
	assert.Equal(t, chess.Black, game.Game.TeamTurn())
}

func TestCheckmateNotification(t *testing.T) {
	gs := newGameService()
	gameID := seatedGame(t, gs)
	ann, bob := &fakeConn{}, &fakeConn{}
	require.NoError(t, gs.Connect(gameID, "ann", ann))
	require.NoError(t, gs.Connect(gameID, "bob", bob))

	require.NoError(t, gs.MakeMove(gameID, "ann", mv(t, "f2f3"), ann))
	require.NoError(t, gs.MakeMove(gameID, "bob", mv(t, "e7e5"), bob))
	require.NoError(t, gs.MakeMove(gameID, "ann", mv(t, "g2g4"), ann))
	require.NoError(t, gs.MakeMove(gameID, "bob", mv(t, "d8h4"), bob))

	assert.Equal(t, "ann (WHITE) is in checkmate! BLACK wins!", ann.last().Message)

	err := gs.MakeMove(gameID, "ann", mv(t, "a2a3"), ann)
	assert.ErrorIs(t, err, chess.ErrInvalidMove)
	assert.Equal(t, "Error: game is over", ErrorMessage(err))
}

func TestResign(t *testing.T) {
	gs := newGameService()
	gameID := seatedGame(t, gs)
	bob := &fakeConn{}
	require.NoError(t, gs.Connect(gameID, "bob", bob))

	assert.ErrorIs(t, gs.Resign(gameID, "eve"), ErrForbidden)
	require.NoError(t, gs.Resign(gameID, "ann"))
	assert.Equal(t, "ann has resigned", bob.last().Message)
	assert.ErrorIs(t, gs.Resign(gameID, "bob"), ErrBadRequest)

	game, err := gs.GetGame(gameID)
	require.NoError(t, err)
	assert.True(t, game.Game.IsGameOver())
}

func TestLeaveFreesSeat(t *testing.T) {
	gs := newGameService()
	gameID := seatedGame(t, gs)
	ann, bob := &fakeConn{}, &fakeConn{}
	require.NoError(t, gs.Connect(gameID, "ann", ann))
	require.NoError(t, gs.Connect(gameID, "bob", bob))

	require.NoError(t, gs.Leave(gameID, "ann", ann))
	assert.Equal(t, "ann has left the game", bob.last().Message)
	assert.NotEqual(t, "ann has left the game", ann.last().Message)

	game, err := gs.GetGame(gameID)
	require.NoError(t, err)
	assert.Empty(t, game.WhiteUsername)
	assert.Equal(t, "bob", game.BlackUsername)
	assert.NoError(t, gs.JoinGame("eve", gameID, "WHITE"))
}

func TestLoadGameBroadcastsFollowCommitOrder(t *testing.T) {
	gs := newGameService()
	gameID := seatedGame(t, gs)
	eve := &fakeConn{}
	require.NoError(t, gs.Connect(gameID, "eve", eve))

	play := func(username string, moves ...string) {
		for i := 0; i < 20; i++ {
			move := mv(t, moves[i%len(moves)])
			for {
				err := gs.MakeMove(gameID, username, move, nil)
				if err == nil {
					break
				}
				if !errors.Is(err, ErrForbidden) {
					t.Error(err)
					return
				}
				runtime.Gosched()
			}
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		play("ann", "g1f3", "f3g1")
	}()
	go func() {
		defer wg.Done()
		play("bob", "g8f6", "f6g8")
	}()
	wg.Wait()

	eve.mu.Lock()
	defer eve.mu.Unlock()
	var turns []chess.TeamColor
	for _, m := range eve.msgs {
		if m.Type == ws.MessageLoadGame && m.Game != nil {
			turns = append(turns, m.Game.Game.TeamTurn())
		}
	}
	// the first LOAD_GAME is the one Connect sent
	require.Len(t, turns, 41)
	for i, turn := range turns {
		want := chess.White
		if i%2 == 1 {
			want = chess.Black
		}
		assert.Equal(t, want, turn, "LOAD_GAME %d", i)
	}
}
