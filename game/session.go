package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/google/uuid"
)

// Session errors.
var (
	ErrNilGenerator    = errors.New("maze generator is required")
	ErrInvalidInterval = errors.New("regeneration interval must be positive")
	ErrSessionEnded    = errors.New("session has ended")
	ErrBlockedMove     = errors.New("move blocked by a wall")
	ErrOutOfBounds     = errors.New("move leaves the maze")
)

const (
	stateBufferSize = 16 // States buffered for a slow listener before new ones are dropped.
)

// Config holds the parameters of a new session.
type Config struct {
	ID        uuid.UUID     // Session ID; generated when nil.
	PlayerID  uuid.UUID     // Player owning the session.
	Generator MazeGenerator // Source of every maze shown in the session.
	Interval  time.Duration // Time between automatic regenerations.
	Duration  time.Duration // Session lifetime; zero means unlimited.
}

// State is an immutable view of a session at one version.
type State struct {
	SessionID     uuid.UUID     `json:"session_id"`
	PlayerID      uuid.UUID     `json:"player_id"`
	Version       int64         `json:"version"`
	Maze          *maze.Maze    `json:"maze"`
	Position      maze.Position `json:"position"`
	OnWall        bool          `json:"on_wall"`
	Moves         int           `json:"moves"`
	Regenerations int           `json:"regenerations"`
	Won           bool          `json:"won"`
	Ended         bool          `json:"ended"`
	StartedAt     time.Time     `json:"started_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Session is a single-player run through a maze that is regenerated on a fixed
// cadence while the player's position stays put. After a regeneration the player
// may stand on a wall; they can still step off it onto any passable neighbor.
type Session struct {
	id        uuid.UUID
	playerID  uuid.UUID
	generator MazeGenerator
	interval  time.Duration
	duration  time.Duration

	maze          *maze.Maze
	position      maze.Position
	version       int64
	moves         int
	regenerations int
	won           bool
	ended         bool
	startedAt     time.Time
	updatedAt     time.Time

	stop     chan struct{}
	stopOnce sync.Once

	StateChan chan State // Receives every state change; closed when the session ends.
	EndChan   chan State // Receives the final state once, then is closed.
	sync.RWMutex
}

// New creates a session with a freshly generated maze and the player on its start cell.
func New(c Config) (*Session, error) {
	if c.Generator == nil {
		return nil, ErrNilGenerator
	}
	if c.Interval <= 0 {
		return nil, ErrInvalidInterval
	}

	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	m := c.Generator.Generate()
	now := time.Now().UTC()
	return &Session{
		id:        id,
		playerID:  c.PlayerID,
		generator: c.Generator,
		interval:  c.Interval,
		duration:  c.Duration,
		maze:      m,
		position:  m.Start(),
		startedAt: now,
		updatedAt: now,
		stop:      make(chan struct{}),
		StateChan: make(chan State, stateBufferSize),
		EndChan:   make(chan State, 1),
	}, nil
}

// ID returns the session ID.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// PlayerID returns the ID of the player owning the session.
func (s *Session) PlayerID() uuid.UUID {
	return s.playerID
}

// Start regenerates the maze every interval until the context is done, Stop is
// called, the session duration elapses or the player wins. It blocks.
func (s *Session) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var expired <-chan time.Time
	if s.duration > 0 {
		timer := time.NewTimer(s.duration)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return
		case <-s.stop:
			return
		case <-expired:
			s.Stop()
			return
		case <-ticker.C:
			_, _ = s.Regenerate()
		}
	}
}

// Stop ends the session and publishes its final state. It is safe to call more than once.
func (s *Session) Stop() {
	s.Lock()
	s.finishLocked()
	s.Unlock()
	s.stopOnce.Do(func() { close(s.stop) })
}

// Done is closed once the session has ended.
func (s *Session) Done() <-chan struct{} {
	return s.stop
}

// Regenerate swaps in a new maze without moving the player.
func (s *Session) Regenerate() (State, error) {
	// Generation happens outside the lock so moves are not held up by it.
	m := s.generator.Generate()

	s.Lock()
	defer s.Unlock()
	if s.ended {
		return State{}, ErrSessionEnded
	}

	s.maze = m
	s.regenerations++
	s.touchLocked()

	state := s.stateLocked()
	s.publishLocked(state)
	return state, nil
}

// Move steps the player one cell in the given direction. Stepping onto a wall or
// off the grid is rejected and leaves the session unchanged; reaching the end wins
// and ends the session.
func (s *Session) Move(d maze.Direction) (State, error) {
	s.Lock()
	if s.ended {
		s.Unlock()
		return State{}, ErrSessionEnded
	}

	target := s.position.Add(d.Offset())
	if !s.maze.InBound(target) {
		s.Unlock()
		return State{}, ErrOutOfBounds
	}
	if !s.maze.IsPassable(target) {
		s.Unlock()
		return State{}, ErrBlockedMove
	}

	s.position = target
	s.moves++
	s.touchLocked()

	if target == s.maze.End() {
		s.won = true
		s.finishLocked()
		state := s.stateLocked()
		s.Unlock()
		s.stopOnce.Do(func() { close(s.stop) })
		return state, nil
	}

	state := s.stateLocked()
	s.publishLocked(state)
	s.Unlock()
	return state, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.RLock()
	defer s.RUnlock()
	return s.stateLocked()
}

func (s *Session) touchLocked() {
	s.version++
	s.updatedAt = time.Now().UTC()
}

func (s *Session) stateLocked() State {
	return State{
		SessionID:     s.id,
		PlayerID:      s.playerID,
		Version:       s.version,
		Maze:          s.maze,
		Position:      s.position,
		OnWall:        !s.maze.IsPassable(s.position),
		Moves:         s.moves,
		Regenerations: s.regenerations,
		Won:           s.won,
		Ended:         s.ended,
		StartedAt:     s.startedAt,
		UpdatedAt:     s.updatedAt,
	}
}

// publishLocked hands a state to the listener without blocking; a full buffer drops it.
func (s *Session) publishLocked(state State) {
	select {
	case s.StateChan <- state:
	default:
	}
}

// finishLocked marks the session ended, emits the final state and closes both channels.
func (s *Session) finishLocked() {
	if s.ended {
		return
	}
	s.ended = true
	s.touchLocked()

	close(s.StateChan)
	s.EndChan <- s.stateLocked()
	close(s.EndChan)
}
