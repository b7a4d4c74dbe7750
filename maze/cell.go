package maze

import "fmt"

// CellType is the kind of a single maze cell.
type CellType int

const (
	Wall  CellType = iota // Impassable cell.
	Path                  // Carved, passable cell.
	Start                 // Entry cell, bottom-left.
	End                   // Goal cell, top-right.
)

// cellRunes maps each cell type to its text encoding.
var cellRunes = map[CellType]rune{
	Wall:  '#',
	Path:  '.',
	Start: 'S',
	End:   'E',
}

// String returns the lower-case name of the cell type.
func (t CellType) String() string {
	switch t {
	case Wall:
		return "wall"
	case Path:
		return "path"
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return fmt.Sprintf("CellType(%d)", int(t))
	}
}

// Passable reports whether a player or a search may enter a cell of this type.
func (t CellType) Passable() bool {
	return t != Wall
}

// Rune returns the text encoding of the cell type.
func (t CellType) Rune() rune {
	if r, ok := cellRunes[t]; ok {
		return r
	}
	return '?'
}

// cellTypeFromRune decodes a single character of a maze row.
func cellTypeFromRune(r rune) (CellType, bool) {
	for t, c := range cellRunes {
		if c == r {
			return t, true
		}
	}
	return Wall, false
}

// Position is a cell coordinate; X grows rightward and Y grows downward.
type Position struct {
	X int `json:"x" yaml:"x" bson:"x"`
	Y int `json:"y" yaml:"y" bson:"y"`
}

// Add returns the position shifted by the given offset.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// String returns the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Cell is a single grid square of a maze.
type Cell struct {
	Type     CellType // Kind of the cell.
	Position Position // Coordinate of the cell; always matches its grid index.
}
