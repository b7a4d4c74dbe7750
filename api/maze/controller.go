// Package mazeapi serves one-off maze generation.
package mazeapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/gin-gonic/gin"
)

// GenerateRequest holds the optional query parameters of a generation call.
type GenerateRequest struct {
	Size    *int     `form:"size"`
	Density *float64 `form:"density"`
	Seed    *int64   `form:"seed"`
}

// GenerateResponse is a generated maze with the parameters that reproduce it.
type GenerateResponse struct {
	Seed           int64    `json:"seed"`
	Size           int      `json:"size"`
	Density        float64  `json:"density"`
	Maze           []string `json:"maze"`
	SolutionLength int      `json:"solution_length"`
	PathCoverage   float64  `json:"path_coverage"`
}

// Config holds the defaults and limits of the controller.
type Config struct {
	DefaultConfig maze.Config
	MaxGridSize   int
}

// Controller generates mazes on request.
type Controller struct {
	defaults    maze.Config
	maxGridSize int
}

// NewController validates the defaults and creates a Controller.
func NewController(c Config) (*Controller, error) {
	if err := c.DefaultConfig.Validate(); err != nil {
		return nil, err
	}
	if c.MaxGridSize < c.DefaultConfig.GridSize {
		return nil, errors.New("max grid size is below the default grid size")
	}
	return &Controller{defaults: c.DefaultConfig, maxGridSize: c.MaxGridSize}, nil
}

// RegisterPublic registers public routes.
func (mc *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/maze", mc.generate)
}

// RegisterProtected registers protected routes.
func (mc *Controller) RegisterProtected(route *gin.RouterGroup) {}

func (mc *Controller) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config := mc.defaults
	if request.Size != nil {
		config.GridSize = *request.Size
	}
	if request.Density != nil {
		config.PathDensity = *request.Density
	}
	if config.GridSize > mc.maxGridSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("grid size must not exceed %d", mc.maxGridSize)})
		return
	}

	seed := time.Now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}

	generator, err := maze.New(config, maze.WithSeed(seed))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := generator.Generate()

	ctx.JSON(http.StatusOK, &GenerateResponse{
		Seed:           seed,
		Size:           config.GridSize,
		Density:        config.PathDensity,
		Maze:           m.Rows(),
		SolutionLength: len(m.SolutionPath()),
		PathCoverage:   m.PathCoverage(),
	})
}
