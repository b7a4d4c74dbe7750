// Package gameapi exposes maze sessions over REST.
package gameapi

import (
	"time"

	dmn "github.com/beka-birhanu/shifting-maze/domain"
	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/google/uuid"
)

// MoveRequest asks to move the player one cell.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// SessionResponse is the client view of a session state.
type SessionResponse struct {
	SessionID     uuid.UUID     `json:"session_id"`
	Version       int64         `json:"version"`
	Size          int           `json:"size"`
	Maze          []string      `json:"maze"`
	Position      maze.Position `json:"position"`
	OnWall        bool          `json:"on_wall"`
	Moves         int           `json:"moves"`
	Regenerations int           `json:"regenerations"`
	Won           bool          `json:"won"`
	Ended         bool          `json:"ended"`
	StartedAt     time.Time     `json:"started_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// RecordResponse summarizes a finished session.
type RecordResponse struct {
	SessionID     uuid.UUID `json:"session_id"`
	GridSize      int       `json:"grid_size"`
	PathDensity   float64   `json:"path_density"`
	Moves         int       `json:"moves"`
	Regenerations int       `json:"regenerations"`
	Won           bool      `json:"won"`
	DurationMs    int64     `json:"duration_ms"`
	EndedAt       time.Time `json:"ended_at"`
}

func newSessionResponse(s game.State) *SessionResponse {
	return &SessionResponse{
		SessionID:     s.SessionID,
		Version:       s.Version,
		Size:          s.Maze.Size(),
		Maze:          s.Maze.Rows(),
		Position:      s.Position,
		OnWall:        s.OnWall,
		Moves:         s.Moves,
		Regenerations: s.Regenerations,
		Won:           s.Won,
		Ended:         s.Ended,
		StartedAt:     s.StartedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func newRecordResponse(r *dmn.SessionRecord) RecordResponse {
	return RecordResponse{
		SessionID:     r.ID,
		GridSize:      r.GridSize,
		PathDensity:   r.PathDensity,
		Moves:         r.Moves,
		Regenerations: r.Regenerations,
		Won:           r.Won,
		DurationMs:    r.Duration().Milliseconds(),
		EndedAt:       r.EndedAt,
	}
}
