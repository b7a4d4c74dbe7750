package game

import "github.com/beka-birhanu/shifting-maze/maze"

// MazeGenerator produces a fresh, solvable maze snapshot on each call.
type MazeGenerator interface {
	Generate() *maze.Maze
}
