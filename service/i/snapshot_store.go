package i

import (
	"context"
	"errors"

	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/google/uuid"
)

// SnapshotStore keeps the latest published state of each session.
type SnapshotStore interface {
	// Save stores the state unless a state with the same or a newer version is already stored.
	Save(ctx context.Context, state game.State) error

	// Latest returns the most recent stored state of a session.
	Latest(ctx context.Context, sessionID uuid.UUID) (*game.State, error)
}

// ErrSnapshotNotFound is returned by Latest when no state is stored for the session.
var ErrSnapshotNotFound = errors.New("snapshot not found")
