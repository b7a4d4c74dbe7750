package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecord is the stored outcome of a finished maze session.
type SessionRecord struct {
	ID            uuid.UUID `bson:"_id"`
	PlayerID      uuid.UUID `bson:"playerId"`
	GridSize      int       `bson:"gridSize"`
	PathDensity   float64   `bson:"pathDensity"`
	Moves         int       `bson:"moves"`
	Regenerations int       `bson:"regenerations"`
	Won           bool      `bson:"won"`
	FinalMaze     []string  `bson:"finalMaze"`
	StartedAt     time.Time `bson:"startedAt"`
	EndedAt       time.Time `bson:"endedAt"`
}

// Duration returns how long the session ran.
func (r *SessionRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
