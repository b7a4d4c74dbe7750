package gameapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/shifting-maze/api/identity"
	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/beka-birhanu/shifting-maze/service"
	"github.com/beka-birhanu/shifting-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionController serves the maze sessions of the authenticated player.
type SessionController struct {
	gameSessionManager i.GameSessionManager
}

// NewSessionController initializes a SessionController.
func NewSessionController(gsm i.GameSessionManager) (*SessionController, error) {
	if gsm == nil {
		return nil, errors.New("session controller requires a game session manager")
	}
	return &SessionController{gameSessionManager: gsm}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.newSession)
		sessions.GET("/history", sc.history)
		sessions.GET("/:ID", sc.state)
		sessions.POST("/:ID/moves", sc.move)
		sessions.POST("/:ID/regenerate", sc.regenerate)
	}
}

func (sc *SessionController) newSession(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	state, err := sc.gameSessionManager.NewSession(ctx, playerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while starting session"})
		return
	}
	ctx.JSON(http.StatusCreated, newSessionResponse(state))
}

func (sc *SessionController) state(ctx *gin.Context) {
	playerID, sessionID, ok := sc.ids(ctx)
	if !ok {
		return
	}

	state, err := sc.gameSessionManager.State(ctx, sessionID, playerID)
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(state))
}

func (sc *SessionController) move(ctx *gin.Context) {
	playerID, sessionID, ok := sc.ids(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	direction, err := maze.ParseDirection(request.Direction)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := sc.gameSessionManager.Move(sessionID, playerID, direction)
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(state))
}

func (sc *SessionController) regenerate(ctx *gin.Context) {
	playerID, sessionID, ok := sc.ids(ctx)
	if !ok {
		return
	}

	state, err := sc.gameSessionManager.Regenerate(sessionID, playerID)
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(state))
}

func (sc *SessionController) history(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var limit int64
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	records, err := sc.gameSessionManager.History(playerID, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading history"})
		return
	}

	response := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		response = append(response, newRecordResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

// ids reads the player and session IDs of a request, writing the error response when missing.
func (sc *SessionController) ids(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return playerID, sessionID, true
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrSessionEnded):
		return http.StatusConflict
	case errors.Is(err, game.ErrBlockedMove), errors.Is(err, game.ErrOutOfBounds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
