package snapshot

import (
	"testing"
	"time"

	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStoreRejectsTTL(t *testing.T) {
	_, err := NewRedisStore(nil, 0)
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("5d0f3c4e-7b42-4a8e-9f0e-7c3b1f9d2a10")
	assert.Equal(t, "maze:session:5d0f3c4e-7b42-4a8e-9f0e-7c3b1f9d2a10", sessionKey(id))
	assert.Equal(t, "maze:session:5d0f3c4e-7b42-4a8e-9f0e-7c3b1f9d2a10:lock", lockKey(id))
}

func TestStateEncoding(t *testing.T) {
	m, err := maze.FromRows([]string{
		"#..E",
		"#.##",
		"#..#",
		"S.##",
	})
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	state := game.State{
		SessionID:     uuid.New(),
		PlayerID:      uuid.New(),
		Version:       7,
		Maze:          m,
		Position:      maze.Position{X: 1, Y: 2},
		Moves:         3,
		Regenerations: 4,
		StartedAt:     now,
		UpdatedAt:     now.Add(time.Minute),
	}

	data, err := encodeState(state)
	require.NoError(t, err)

	decoded, err := decodeState(data)
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, decoded.SessionID)
	assert.Equal(t, state.Version, decoded.Version)
	assert.Equal(t, state.Position, decoded.Position)
	assert.Equal(t, m.Rows(), decoded.Maze.Rows())
	assert.True(t, decoded.UpdatedAt.Equal(state.UpdatedAt))

	_, err = decodeState([]byte(`{"maze": {"size": 2, "rows": ["#E", "S#"]}}`))
	assert.Error(t, err, "a maze without a path must not decode")
}

func TestIsNewer(t *testing.T) {
	current := &game.State{Version: 3}
	assert.True(t, isNewer(nil, game.State{Version: 0}))
	assert.True(t, isNewer(current, game.State{Version: 4}))
	assert.False(t, isNewer(current, game.State{Version: 3}))
	assert.False(t, isNewer(current, game.State{Version: 2}))
}
