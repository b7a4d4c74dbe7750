package i

import (
	"context"

	dmn "github.com/beka-birhanu/shifting-maze/domain"
	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/google/uuid"
)

// GameSessionManager runs maze sessions on behalf of players.
type GameSessionManager interface {
	// NewSession starts a session for the player, replacing any running one.
	NewSession(ctx context.Context, playerID uuid.UUID) (game.State, error)

	// State returns the latest state of a session owned by the player.
	State(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error)

	// Move steps the player one cell in a running session.
	Move(sessionID, playerID uuid.UUID, d maze.Direction) (game.State, error)

	// Regenerate replaces the maze of a running session on demand.
	Regenerate(sessionID, playerID uuid.UUID) (game.State, error)

	// History returns the player's finished sessions, most recent first.
	History(playerID uuid.UUID, limit int64) ([]*dmn.SessionRecord, error)
}
