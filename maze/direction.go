package maze

import (
	"errors"
	"strings"
)

// Direction is one of the four axis-aligned moves.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var (
	// Directions lists every direction in a fixed order; random picks index into it.
	Directions = []Direction{Up, Right, Down, Left}

	offsets = map[Direction]Position{
		Up:    {X: 0, Y: -1},
		Right: {X: 1, Y: 0},
		Down:  {X: 0, Y: 1},
		Left:  {X: -1, Y: 0},
	}

	directionNames = map[Direction]string{
		Up:    "up",
		Right: "right",
		Down:  "down",
		Left:  "left",
	}

	ErrInvalidDirection = errors.New("invalid direction")
)

// Offset returns the coordinate delta of a single step in the direction.
func (d Direction) Offset() Position {
	return offsets[d]
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseDirection decodes a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return Up, ErrInvalidDirection
}
