package maze

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// Generation tuning. Values are empirical and only shape how the maze looks;
// connectivity never depends on them.
const (
	walksPerSize     = 8   // One guaranteed random walk per this many columns.
	extraWalks       = 3   // Up to extraWalks-1 additional walks.
	walkCarveProb    = 0.6 // Chance a walk carves the cell it stands on.
	walkGoalBiasProb = 0.6 // Chance a walk steps toward the end instead of randomly.

	noiseFactor = 0.4 // Scattered noise probability per unit of path density.

	strategyProb = 0.5 // Chance a directed path strategy runs before verification.

	deadEndsPerSize  = 12  // One guaranteed dead-end attempt per this many columns.
	extraDeadEnds    = 3   // Up to extraDeadEnds-1 additional attempts.
	deadEndCarveProb = 0.3 // Chance a dead-end attempt carves its wall neighbor.
)

// Configuration errors.
var (
	ErrInvalidGridSize    = errors.New("grid size must be at least 1")
	ErrInvalidPathDensity = errors.New("path density must be within [0, 1]")
)

// Source is the random source the generator draws from.
// *rand.Rand satisfies it; a Source is not required to be safe for concurrent use.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Config holds the parameters of a generator.
type Config struct {
	GridSize    int     `json:"grid_size" yaml:"size"`       // Number of rows and columns.
	PathDensity float64 `json:"path_density" yaml:"density"` // Noise knob in [0, 1]; higher means more paths.
}

// Validate rejects configurations that would produce a malformed maze.
func (c Config) Validate() error {
	if c.GridSize < 1 {
		return ErrInvalidGridSize
	}
	// The negated form also rejects NaN.
	if !(c.PathDensity >= 0 && c.PathDensity <= 1) {
		return ErrInvalidPathDensity
	}
	return nil
}

// Option customizes a Generator.
type Option func(*Generator)

// WithSource makes the generator draw from src.
func WithSource(src Source) Option {
	return func(g *Generator) {
		g.src = src
	}
}

// WithSeed makes the generator draw from a math/rand source seeded with seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.src = rand.New(rand.NewSource(seed))
	}
}

// Generator produces mazes for a fixed configuration.
// It keeps no maze state between calls; the mutex only guards its random source.
type Generator struct {
	config Config
	src    Source
	sync.Mutex
}

// New validates the configuration and creates a generator.
// Without options the generator is seeded from the current time.
func New(c Config, opts ...Option) (*Generator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{config: c}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Generate produces a new maze from the generator's own random source.
// It is safe for concurrent use; calls are serialized on the source.
func (g *Generator) Generate() *Maze {
	g.Lock()
	defer g.Unlock()
	return g.GenerateFrom(g.src)
}

// GenerateFrom produces a new maze drawing only from src. It does not touch the
// generator's own source, so callers that bring their own source need no locking.
func (g *Generator) GenerateFrom(src Source) *Maze {
	c := newCarver(g.config.GridSize, src)

	c.randomWalks()
	c.scatter(g.config.PathDensity * noiseFactor)
	if c.chance(strategyProb) {
		c.pickStrategy().apply(c)
	}
	c.ensureConnected()
	c.addDeadEnds()

	return newMaze(c.grid)
}

// carver owns the working grid while a maze is being generated.
type carver struct {
	size       int
	grid       [][]Cell
	rng        Source
	start, end Position
}

// newCarver fills a grid with walls and places the start and end cells.
// For a single-cell grid the end overwrites the start.
func newCarver(size int, rng Source) *carver {
	grid := make([][]Cell, size)
	for y := range grid {
		grid[y] = make([]Cell, size)
		for x := range grid[y] {
			grid[y][x] = Cell{Type: Wall, Position: Position{X: x, Y: y}}
		}
	}

	c := &carver{
		size:  size,
		grid:  grid,
		rng:   rng,
		start: startOf(size),
		end:   endOf(size),
	}
	c.grid[c.start.Y][c.start.X].Type = Start
	c.grid[c.end.Y][c.end.X].Type = End
	return c
}

// chance returns true with probability p.
func (c *carver) chance(p float64) bool {
	return c.rng.Float64() < p
}

func (c *carver) inBound(p Position) bool {
	return inBound(c.size, p)
}

// carve promotes a wall to a path. Anything else, including out-of-bound
// positions, is left untouched.
func (c *carver) carve(p Position) bool {
	if !c.inBound(p) || c.grid[p.Y][p.X].Type != Wall {
		return false
	}
	c.grid[p.Y][p.X].Type = Path
	return true
}

func (c *carver) connected() bool {
	return hasPath(c.grid, c.start, c.end)
}

// randomWalks runs goal-biased random walks from the start cell.
func (c *carver) randomWalks() {
	numWalks := c.size/walksPerSize + c.rng.Intn(extraWalks)
	for walk := 0; walk < numWalks; walk++ {
		cur := c.start
		steps := c.size/3 + c.rng.Intn(c.size/2+1)

		for step := 0; step < steps; step++ {
			if c.chance(walkCarveProb) {
				c.carve(cur)
			}

			next := cur.Add(c.walkDirection(cur).Offset())
			if c.inBound(next) {
				cur = next
			}
		}
	}
}

// walkDirection prefers moving right, then up, when the goal bias roll succeeds.
func (c *carver) walkDirection(cur Position) Direction {
	if c.chance(walkGoalBiasProb) {
		if cur.X < c.size-1 {
			return Right
		}
		if cur.Y > 0 {
			return Up
		}
	}
	return Directions[c.rng.Intn(len(Directions))]
}

// scatter carves every cell except start and end independently with probability p.
func (c *carver) scatter(p float64) {
	for y := 0; y < c.size; y++ {
		for x := 0; x < c.size; x++ {
			pos := Position{X: x, Y: y}
			if pos == c.start || pos == c.end {
				continue
			}
			if c.chance(p) {
				c.carve(pos)
			}
		}
	}
}

// pickStrategy chooses a directed strategy uniformly.
func (c *carver) pickStrategy() Strategy {
	return Strategies[c.rng.Intn(len(Strategies))]
}

// ensureConnected makes sure the end is reachable from the start: first by
// re-applying a random strategy, then by carving a monotone path.
func (c *carver) ensureConnected() {
	if c.connected() {
		return
	}

	c.pickStrategy().apply(c)
	if c.connected() {
		return
	}

	c.carveMonotonePath()
}

// carveMonotonePath walks from start to end, alternating right and up steps while
// both are needed, and carves every cell it visits. Each step reduces the Manhattan
// distance to the end, so the walk always arrives.
func (c *carver) carveMonotonePath() {
	cur := c.start
	preferX := true
	for cur.X < c.end.X || cur.Y > c.end.Y {
		needX, needY := cur.X < c.end.X, cur.Y > c.end.Y
		switch {
		case needX && needY:
			if preferX {
				cur.X++
			} else {
				cur.Y--
			}
			preferX = !preferX
		case needX:
			cur.X++
		default:
			cur.Y--
		}
		c.carve(cur)
	}
}

// addDeadEnds sprouts a few single-cell stubs from existing paths.
func (c *carver) addDeadEnds() {
	numDeadEnds := c.size/deadEndsPerSize + c.rng.Intn(extraDeadEnds)
	for i := 0; i < numDeadEnds; i++ {
		p := Position{X: c.rng.Intn(c.size), Y: c.rng.Intn(c.size)}
		if c.grid[p.Y][p.X].Type != Path {
			continue
		}

		next := p.Add(Directions[c.rng.Intn(len(Directions))].Offset())
		if !c.inBound(next) || c.grid[next.Y][next.X].Type != Wall {
			continue
		}
		if c.chance(deadEndCarveProb) {
			c.carve(next)
		}
	}
}
