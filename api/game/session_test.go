package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/shifting-maze/api/identity"
	dmn "github.com/beka-birhanu/shifting-maze/domain"
	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/beka-birhanu/shifting-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeManager struct {
	state      game.State
	err        error
	lastMove   maze.Direction
	lastLimit  int64
	lastPlayer uuid.UUID
	records    []*dmn.SessionRecord
}

func (f *fakeManager) NewSession(_ context.Context, playerID uuid.UUID) (game.State, error) {
	f.lastPlayer = playerID
	return f.state, f.err
}

func (f *fakeManager) State(_ context.Context, _, playerID uuid.UUID) (game.State, error) {
	f.lastPlayer = playerID
	return f.state, f.err
}

func (f *fakeManager) Move(_, playerID uuid.UUID, d maze.Direction) (game.State, error) {
	f.lastPlayer, f.lastMove = playerID, d
	return f.state, f.err
}

func (f *fakeManager) Regenerate(_, playerID uuid.UUID) (game.State, error) {
	f.lastPlayer = playerID
	return f.state, f.err
}

func (f *fakeManager) History(playerID uuid.UUID, limit int64) ([]*dmn.SessionRecord, error) {
	f.lastPlayer, f.lastLimit = playerID, limit
	return f.records, f.err
}

func newTestState(t *testing.T) game.State {
	t.Helper()
	m, err := maze.FromRows([]string{
		"#..E",
		"#.##",
		"#..#",
		"S.##",
	})
	require.NoError(t, err)
	return game.State{SessionID: uuid.New(), Maze: m, Position: m.Start(), Version: 2}
}

func newSessionRouter(t *testing.T, m *fakeManager, playerID uuid.UUID) *gin.Engine {
	t.Helper()
	c, err := NewSessionController(m)
	require.NoError(t, err)

	router := gin.New()
	group := router.Group("/")
	group.Use(func(ctx *gin.Context) {
		ctx.Set(identity.ContextPlayerID, playerID)
	})
	c.RegisterProtected(group)
	return router
}

func do(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestNewSessionController(t *testing.T) {
	_, err := NewSessionController(nil)
	assert.Error(t, err)
}

func TestSessionRoutes(t *testing.T) {
	playerID := uuid.New()
	state := newTestState(t)
	m := &fakeManager{state: state}
	router := newSessionRouter(t, m, playerID)
	sessionPath := "/sessions/" + state.SessionID.String()

	t.Run("create", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/sessions", nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, playerID, m.lastPlayer)

		var response SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, state.SessionID, response.SessionID)
		assert.Equal(t, 4, response.Size)
		assert.Equal(t, state.Maze.Rows(), response.Maze)
		assert.Equal(t, maze.Position{X: 0, Y: 3}, response.Position)
	})

	t.Run("state", func(t *testing.T) {
		rec := do(router, http.MethodGet, sessionPath, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad session id", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/sessions/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("move", func(t *testing.T) {
		rec := do(router, http.MethodPost, sessionPath+"/moves", MoveRequest{Direction: "Left"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, maze.Left, m.lastMove)

		rec = do(router, http.MethodPost, sessionPath+"/moves", MoveRequest{Direction: "north"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(router, http.MethodPost, sessionPath+"/moves", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("regenerate", func(t *testing.T) {
		rec := do(router, http.MethodPost, sessionPath+"/regenerate", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("history", func(t *testing.T) {
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		m.records = []*dmn.SessionRecord{{ID: uuid.New(), Won: true, StartedAt: start, EndedAt: start.Add(2 * time.Second)}}

		rec := do(router, http.MethodGet, "/sessions/history?limit=5", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(5), m.lastLimit)

		var response []RecordResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, int64(2000), response[0].DurationMs)

		rec = do(router, http.MethodGet, "/sessions/history?limit=many", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrSessionNotFound, http.StatusNotFound},
		{game.ErrSessionEnded, http.StatusConflict},
		{game.ErrBlockedMove, http.StatusUnprocessableEntity},
		{game.ErrOutOfBounds, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			router := newSessionRouter(t, &fakeManager{err: tt.err}, uuid.New())
			rec := do(router, http.MethodPost, "/sessions/"+uuid.NewString()+"/moves", MoveRequest{Direction: "up"})
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
