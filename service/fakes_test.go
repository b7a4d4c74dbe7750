package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	dmn "github.com/beka-birhanu/shifting-maze/domain"
	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/beka-birhanu/shifting-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]dmn.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]dmn.User)}
}

func (r *memUsers) Save(user *dmn.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != user.ID && u.Username == user.Username {
			return dmn.ErrUsernameConflict
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUsers) ByID(id uuid.UUID) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, dmn.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUsers) ByUsername(username string) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

type memRecords struct {
	mu      sync.Mutex
	records map[uuid.UUID]dmn.SessionRecord
}

func newMemRecords() *memRecords {
	return &memRecords{records: make(map[uuid.UUID]dmn.SessionRecord)}
}

func (r *memRecords) Save(record *dmn.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	return nil
}

func (r *memRecords) ByPlayer(playerID uuid.UUID, limit int64) ([]*dmn.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*dmn.SessionRecord
	for _, rec := range r.records {
		if rec.PlayerID == playerID {
			rec := rec
			out = append(out, &rec)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].EndedAt.After(out[b].EndedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRecords) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type memSnapshots struct {
	mu     sync.Mutex
	states map[uuid.UUID]game.State
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{states: make(map[uuid.UUID]game.State)}
}

func (s *memSnapshots) Save(_ context.Context, state game.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.states[state.SessionID]; ok && cur.Version >= state.Version {
		return nil
	}
	s.states[state.SessionID] = state
	return nil
}

func (s *memSnapshots) Latest(_ context.Context, sessionID uuid.UUID) (*game.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[sessionID]
	if !ok {
		return nil, i.ErrSnapshotNotFound
	}
	return &state, nil
}

// fixedGenerator always returns the same maze.
type fixedGenerator struct {
	m *maze.Maze
}

func (g fixedGenerator) Generate() *maze.Maze {
	return g.m
}

func fixedFactory(t *testing.T, rows []string) GeneratorFactory {
	t.Helper()
	m, err := maze.FromRows(rows)
	require.NoError(t, err)
	return func(maze.Config) (game.MazeGenerator, error) {
		return fixedGenerator{m: m}, nil
	}
}
