package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/shifting-maze/domain"
	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/beka-birhanu/shifting-maze/service/i"
	"github.com/google/uuid"
)

const (
	storeTimeout        = 2 * time.Second
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMissingDeps     = errors.New("session manager requires a snapshot store, repositories and a logger")
)

var _ i.GameSessionManager = &GameSessionManager{}

// GeneratorFactory builds the maze generator of a new session.
type GeneratorFactory func(maze.Config) (game.MazeGenerator, error)

// GameSessionManager runs one maze session per player and persists what they produce:
// every published state goes to the snapshot store, every finished session to the record repo.
type GameSessionManager struct {
	sessions         map[uuid.UUID]*game.Session
	playerToSession  map[uuid.UUID]uuid.UUID
	mazeConfig       maze.Config
	interval         time.Duration
	duration         time.Duration
	generatorFactory GeneratorFactory
	snapshots        i.SnapshotStore
	records          i.SessionRecordRepo
	users            i.UserRepo
	logger           i.Logger
	ctx              context.Context
	cancel           context.CancelFunc
	listeners        sync.WaitGroup
	sync.RWMutex
}

// Config holds the dependencies and session parameters of a GameSessionManager.
type Config struct {
	MazeConfig       maze.Config
	RegenInterval    time.Duration
	SessionDuration  time.Duration
	GeneratorFactory GeneratorFactory // Defaults to maze.New.
	Snapshots        i.SnapshotStore
	Records          i.SessionRecordRepo
	Users            i.UserRepo
	Logger           i.Logger
}

// NewGameSessionManager validates the configuration and creates a manager with no sessions.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if err := c.MazeConfig.Validate(); err != nil {
		return nil, err
	}
	if c.RegenInterval <= 0 {
		return nil, game.ErrInvalidInterval
	}
	if c.Snapshots == nil || c.Records == nil || c.Users == nil || c.Logger == nil {
		return nil, ErrMissingDeps
	}

	factory := c.GeneratorFactory
	if factory == nil {
		factory = newMazeGenerator
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &GameSessionManager{
		sessions:         make(map[uuid.UUID]*game.Session),
		playerToSession:  make(map[uuid.UUID]uuid.UUID),
		mazeConfig:       c.MazeConfig,
		interval:         c.RegenInterval,
		duration:         c.SessionDuration,
		generatorFactory: factory,
		snapshots:        c.Snapshots,
		records:          c.Records,
		users:            c.Users,
		logger:           c.Logger,
		ctx:              ctx,
		cancel:           cancel,
	}, nil
}

func newMazeGenerator(c maze.Config) (game.MazeGenerator, error) {
	g, err := maze.New(c)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// NewSession starts a session for the player. A session the player already runs is stopped.
func (g *GameSessionManager) NewSession(ctx context.Context, playerID uuid.UUID) (game.State, error) {
	gen, err := g.generatorFactory(g.mazeConfig)
	if err != nil {
		return game.State{}, fmt.Errorf("creating maze generator: %w", err)
	}

	session, err := game.New(game.Config{
		PlayerID:  playerID,
		Generator: gen,
		Interval:  g.interval,
		Duration:  g.duration,
	})
	if err != nil {
		return game.State{}, fmt.Errorf("creating session: %w", err)
	}

	if previous := g.saveSession(session); previous != nil {
		previous.Stop()
		g.logger.Info(fmt.Sprintf("stopped session %s replaced for player %s", previous.ID(), playerID))
	}

	state := session.Snapshot()
	g.saveSnapshot(ctx, state)

	g.listeners.Add(1)
	go session.Start(g.ctx)
	go g.listen(session)

	g.logger.Info(fmt.Sprintf("started session %s for player %s", session.ID(), playerID))
	return state, nil
}

// State returns the live state of a running session, or its last stored state once it ended.
func (g *GameSessionManager) State(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error) {
	if session, err := g.session(sessionID, playerID); err == nil {
		return session.Snapshot(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	state, err := g.snapshots.Latest(ctx, sessionID)
	if err != nil {
		if errors.Is(err, i.ErrSnapshotNotFound) {
			return game.State{}, ErrSessionNotFound
		}
		return game.State{}, err
	}
	if state.PlayerID != playerID {
		return game.State{}, ErrSessionNotFound
	}
	return *state, nil
}

// Move steps the player of a running session one cell in the given direction.
func (g *GameSessionManager) Move(sessionID, playerID uuid.UUID, d maze.Direction) (game.State, error) {
	session, err := g.session(sessionID, playerID)
	if err != nil {
		return game.State{}, err
	}
	return session.Move(d)
}

// Regenerate replaces the maze of a running session immediately.
func (g *GameSessionManager) Regenerate(sessionID, playerID uuid.UUID) (game.State, error) {
	session, err := g.session(sessionID, playerID)
	if err != nil {
		return game.State{}, err
	}
	return session.Regenerate()
}

// History returns the player's finished sessions, most recent first.
// A non-positive limit selects the default; larger ones are capped.
func (g *GameSessionManager) History(playerID uuid.UUID, limit int64) ([]*dmn.SessionRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return g.records.ByPlayer(playerID, limit)
}

// StopAll ends every running session. Sessions started afterwards end immediately.
func (g *GameSessionManager) StopAll() {
	g.cancel()

	g.RLock()
	sessions := make([]*game.Session, 0, len(g.sessions))
	for _, s := range g.sessions {
		sessions = append(sessions, s)
	}
	g.RUnlock()

	for _, s := range sessions {
		s.Stop()
	}
}

// Wait blocks until every session listener has persisted its final state.
func (g *GameSessionManager) Wait() {
	g.listeners.Wait()
}

func (g *GameSessionManager) session(sessionID, playerID uuid.UUID) (*game.Session, error) {
	g.RLock()
	defer g.RUnlock()
	s, ok := g.sessions[sessionID]
	if !ok || s.PlayerID() != playerID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// saveSession registers the session and returns the one it replaces for the same player, if any.
func (g *GameSessionManager) saveSession(s *game.Session) *game.Session {
	g.Lock()
	defer g.Unlock()

	var previous *game.Session
	if id, ok := g.playerToSession[s.PlayerID()]; ok {
		previous = g.sessions[id]
	}
	g.sessions[s.ID()] = s
	g.playerToSession[s.PlayerID()] = s.ID()
	return previous
}

func (g *GameSessionManager) listen(s *game.Session) {
	defer g.listeners.Done()

	for state := range s.StateChan {
		g.saveSnapshot(context.Background(), state)
	}

	if final, ok := <-s.EndChan; ok {
		g.saveSnapshot(context.Background(), final)
		g.recordSession(final)
		g.logger.Info(fmt.Sprintf("session %s ended: won=%t moves=%d regenerations=%d",
			final.SessionID, final.Won, final.Moves, final.Regenerations))
	}

	g.clean(s)
}

func (g *GameSessionManager) saveSnapshot(ctx context.Context, state game.State) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := g.snapshots.Save(ctx, state); err != nil {
		g.logger.Error(fmt.Sprintf("saving snapshot of session %s version %d: %s", state.SessionID, state.Version, err))
	}
}

func (g *GameSessionManager) recordSession(final game.State) {
	record := &dmn.SessionRecord{
		ID:            final.SessionID,
		PlayerID:      final.PlayerID,
		GridSize:      g.mazeConfig.GridSize,
		PathDensity:   g.mazeConfig.PathDensity,
		Moves:         final.Moves,
		Regenerations: final.Regenerations,
		Won:           final.Won,
		FinalMaze:     final.Maze.Rows(),
		StartedAt:     final.StartedAt,
		EndedAt:       final.UpdatedAt,
	}
	if err := g.records.Save(record); err != nil {
		g.logger.Error(fmt.Sprintf("saving record of session %s: %s", final.SessionID, err))
	}

	user, err := g.users.ByID(final.PlayerID)
	if err != nil {
		g.logger.Warning(fmt.Sprintf("updating stats of player %s: %s", final.PlayerID, err))
		return
	}
	user.RecordGame(final.Won)
	if err := g.users.Save(user); err != nil {
		g.logger.Error(fmt.Sprintf("saving stats of player %s: %s", final.PlayerID, err))
	}
}

// clean forgets the session unless the player has already been given a newer one.
func (g *GameSessionManager) clean(s *game.Session) {
	g.Lock()
	defer g.Unlock()
	if g.sessions[s.ID()] == s {
		delete(g.sessions, s.ID())
	}
	if g.playerToSession[s.PlayerID()] == s.ID() {
		delete(g.playerToSession, s.PlayerID())
	}
}
