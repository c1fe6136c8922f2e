package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chess-server/internal/chess"
)

func TestQueuePairsOldestFirst(t *testing.T) {
	q := NewQueue()
	for _, name := range []string{"ann", "bob", "cat"} {
		require.NoError(t, q.AddPlayer(name))
	}
	assert.ErrorIs(t, q.AddPlayer("bob"), ErrAlreadyQueued)

	a, b, ok := q.GetNextPair()
	require.True(t, ok)
	assert.Equal(t, "ann", a)
	assert.Equal(t, "bob", b)

	_, _, ok = q.GetNextPair()
	assert.False(t, ok)
	assert.Equal(t, 1, q.Size())

	assert.True(t, q.RemovePlayer("cat"))
	assert.False(t, q.RemovePlayer("cat"))
	assert.Equal(t, 0, q.Size())
}

func TestPlayerFor(t *testing.T) {
	g := NewGameData("1", "friendly")
	g.SetSeat(chess.White, "ann")
	g.SetSeat(chess.Black, "bob")

	assert.Equal(t, Player{Username: "ann", Color: chess.White}, g.PlayerFor("ann"))
	assert.Equal(t, chess.Black, g.PlayerFor("bob").Color)
	assert.True(t, g.PlayerFor("eve").IsObserver())
	assert.Equal(t, "an observer", g.PlayerFor("eve").Describe())
	assert.Equal(t, "bob", g.Seat(chess.Black))
}

func TestGameDataJSON(t *testing.T) {
	g := NewGameData("42", "club night")
	g.WhiteUsername = "ann"
	m, err := chess.ParseMove("e2e4")
	require.NoError(t, err)
	require.NoError(t, g.Game.MakeMove(m))

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"gameName":"club night"`)
	assert.Contains(t, string(data), `"teamTurn":"BLACK"`)

	var back GameData
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, g.Summary(), back.Summary())
	assert.True(t, back.Game.Board().Equal(g.Game.Board()))
	assert.Equal(t, chess.Black, back.Game.TeamTurn())
}
