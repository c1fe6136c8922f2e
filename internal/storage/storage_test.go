package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chess-server/internal/chess"
	"github.com/benbeisheim/chess-server/internal/model"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	b, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": b,
	}
}

func TestUsers(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			user := model.User{Username: "ann", PasswordHash: "x", Email: "ann@example.com"}
			require.NoError(t, s.CreateUser(user))
			assert.ErrorIs(t, s.CreateUser(user), ErrAlreadyTaken)

			got, err := s.GetUser("ann")
			require.NoError(t, err)
			assert.Equal(t, user, got)

			_, err = s.GetUser("bob")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestAuths(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			auth := model.AuthData{AuthToken: "tok", Username: "ann"}
			require.NoError(t, s.CreateAuth(auth))

			got, err := s.GetAuth("tok")
			require.NoError(t, err)
			assert.Equal(t, auth, got)

			require.NoError(t, s.DeleteAuth("tok"))
			assert.ErrorIs(t, s.DeleteAuth("tok"), ErrNotFound)
			_, err = s.GetAuth("tok")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestGames(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			game := model.NewGameData("g1", "first")
			require.NoError(t, s.CreateGame(game))
			assert.ErrorIs(t, s.CreateGame(game), ErrAlreadyTaken)
			require.NoError(t, s.CreateGame(model.NewGameData("g2", "second")))

			loaded, err := s.GetGame("g1")
			require.NoError(t, err)
			m, err := chess.ParseMove("e2e4")
			require.NoError(t, err)
			require.NoError(t, loaded.Game.MakeMove(m))
			loaded.WhiteUsername = "ann"

			again, err := s.GetGame("g1")
			require.NoError(t, err)
			assert.Equal(t, chess.White, again.Game.TeamTurn(), "stored game changed without update")

			require.NoError(t, s.UpdateGame(loaded))
			again, err = s.GetGame("g1")
			require.NoError(t, err)
			assert.Equal(t, chess.Black, again.Game.TeamTurn())
			assert.Equal(t, "ann", again.WhiteUsername)
			assert.NotNil(t, again.Game.PreviousBoard())

			assert.ErrorIs(t, s.UpdateGame(model.NewGameData("nope", "x")), ErrNotFound)
			_, err = s.GetGame("nope")
			assert.ErrorIs(t, err, ErrNotFound)

			games, err := s.ListGames()
			require.NoError(t, err)
			require.Len(t, games, 2)
			assert.Equal(t, "g1", games[0].GameID)
			assert.Equal(t, "g2", games[1].GameID)
		})
	}
}

func TestClear(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.CreateUser(model.User{Username: "ann"}))
			require.NoError(t, s.CreateAuth(model.AuthData{AuthToken: "t", Username: "ann"}))
			require.NoError(t, s.CreateGame(model.NewGameData("g", "n")))

			require.NoError(t, s.Clear())

			_, err := s.GetUser("ann")
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = s.GetAuth("t")
			assert.ErrorIs(t, err, ErrNotFound)
			games, err := s.ListGames()
			require.NoError(t, err)
			assert.Empty(t, games)
		})
	}
}
