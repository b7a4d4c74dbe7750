/*
Package maze generates square grid mazes that always connect a fixed start cell to a fixed end cell.

A maze is carved out of a grid filled with walls by several stochastic passes: goal-biased random
walks, scattered noise, an optional directed path strategy and a few dead ends. A breadth-first
search runs before the dead ends are added and, if the start cannot reach the end, a strategy is
re-applied and finally a monotone path is carved unconditionally. The result is sparse but always
solvable.

Generated mazes are immutable snapshots and can be shared between goroutines.
*/
package maze

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Maze validation errors.
var (
	ErrEmptyMaze       = errors.New("maze has no rows")
	ErrNotSquare       = errors.New("maze is not square")
	ErrUnknownCellType = errors.New("unknown cell type")
	ErrMisplacedStart  = errors.New("start cell is missing or misplaced")
	ErrMisplacedEnd    = errors.New("end cell is missing or misplaced")
	ErrNoPath          = errors.New("end is not reachable from start")
)

// Maze is an immutable square grid of cells.
// Rows are indexed by Y from the top, columns by X from the left.
type Maze struct {
	size int
	grid [][]Cell
}

// newMaze wraps a finished working grid; the caller must not keep the grid.
func newMaze(grid [][]Cell) *Maze {
	return &Maze{size: len(grid), grid: grid}
}

// Size returns the number of rows (and columns) of the maze.
func (m *Maze) Size() int {
	return m.size
}

// Start returns the start position, the bottom-left cell.
func (m *Maze) Start() Position {
	return startOf(m.size)
}

// End returns the end position, the top-right cell.
func (m *Maze) End() Position {
	return endOf(m.size)
}

// InBound reports whether the position lies inside the maze.
func (m *Maze) InBound(p Position) bool {
	return inBound(m.size, p)
}

// CellAt returns the cell at the given position and whether it exists.
func (m *Maze) CellAt(p Position) (Cell, bool) {
	if !m.InBound(p) {
		return Cell{}, false
	}
	return m.grid[p.Y][p.X], true
}

// IsPassable reports whether the position is inside the maze and not a wall.
func (m *Maze) IsPassable(p Position) bool {
	c, ok := m.CellAt(p)
	return ok && c.Type.Passable()
}

// Grid returns a copy of the cell grid.
func (m *Maze) Grid() [][]Cell {
	out := make([][]Cell, m.size)
	for y := range m.grid {
		out[y] = make([]Cell, m.size)
		copy(out[y], m.grid[y])
	}
	return out
}

// Count returns how many cells have the given type.
func (m *Maze) Count(t CellType) int {
	n := 0
	for _, row := range m.grid {
		for _, c := range row {
			if c.Type == t {
				n++
			}
		}
	}
	return n
}

// PathCoverage returns the fraction of cells that are carved paths.
func (m *Maze) PathCoverage() float64 {
	if m.size == 0 {
		return 0
	}
	return float64(m.Count(Path)) / float64(m.size*m.size)
}

// HasPath reports whether the end is reachable from the start through passable cells.
func (m *Maze) HasPath() bool {
	return hasPath(m.grid, m.Start(), m.End())
}

// SolutionPath returns a shortest route from start to end, both included,
// or nil when the end is unreachable.
func (m *Maze) SolutionPath() []Position {
	return shortestPath(m.grid, m.Start(), m.End())
}

// Validate checks every structural invariant of the maze.
func (m *Maze) Validate() error {
	if m.size == 0 {
		return ErrEmptyMaze
	}

	start, end := m.Start(), m.End()
	starts, ends := 0, 0
	for y, row := range m.grid {
		if len(row) != m.size {
			return ErrNotSquare
		}
		for x, c := range row {
			if c.Position != (Position{X: x, Y: y}) {
				return fmt.Errorf("cell at (%d, %d) reports position %s", x, y, c.Position)
			}
			switch c.Type {
			case Start:
				if c.Position != start {
					return ErrMisplacedStart
				}
				starts++
			case End:
				if c.Position != end {
					return ErrMisplacedEnd
				}
				ends++
			case Wall, Path:
			default:
				return ErrUnknownCellType
			}
		}
	}

	// A single-cell maze holds only the end cell, which doubles as the start.
	if m.size == 1 {
		if ends != 1 {
			return ErrMisplacedEnd
		}
		return nil
	}
	if starts != 1 {
		return ErrMisplacedStart
	}
	if ends != 1 {
		return ErrMisplacedEnd
	}
	if !m.HasPath() {
		return ErrNoPath
	}
	return nil
}

// Rows encodes the maze as one string per row: '#' wall, '.' path, 'S' start, 'E' end.
func (m *Maze) Rows() []string {
	rows := make([]string, m.size)
	for y, row := range m.grid {
		var b strings.Builder
		b.Grow(m.size)
		for _, c := range row {
			b.WriteRune(c.Type.Rune())
		}
		rows[y] = b.String()
	}
	return rows
}

// FromRows decodes a maze produced by Rows and validates it.
func FromRows(rows []string) (*Maze, error) {
	size := len(rows)
	if size == 0 {
		return nil, ErrEmptyMaze
	}

	grid := make([][]Cell, size)
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != size {
			return nil, ErrNotSquare
		}
		grid[y] = make([]Cell, size)
		for x, r := range runes {
			t, ok := cellTypeFromRune(r)
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d, %d)", ErrUnknownCellType, r, x, y)
			}
			grid[y][x] = Cell{Type: t, Position: Position{X: x, Y: y}}
		}
	}

	m := newMaze(grid)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// jsonMaze is the wire form of a maze.
type jsonMaze struct {
	Size int      `json:"size"`
	Rows []string `json:"rows"`
}

// MarshalJSON encodes the maze as its size and text rows.
func (m *Maze) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMaze{Size: m.size, Rows: m.Rows()})
}

// UnmarshalJSON decodes and validates a maze encoded by MarshalJSON.
func (m *Maze) UnmarshalJSON(data []byte) error {
	var jm jsonMaze
	if err := json.Unmarshal(data, &jm); err != nil {
		return err
	}
	decoded, err := FromRows(jm.Rows)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// String provides a textual representation of the maze, framed by a border.
func (m *Maze) String() string {
	var b strings.Builder

	border := "+" + strings.Repeat("-", m.size) + "+\n"
	b.WriteString(border)
	for _, row := range m.Rows() {
		b.WriteString("|" + row + "|\n")
	}
	b.WriteString(border)

	return b.String()
}

func startOf(size int) Position {
	return Position{X: 0, Y: size - 1}
}

func endOf(size int) Position {
	return Position{X: size - 1, Y: 0}
}

func inBound(size int, p Position) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}
