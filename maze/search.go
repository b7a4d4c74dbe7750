package maze

import "github.com/gammazero/deque"

// hasPath runs a breadth-first search from start over passable cells and reports
// whether end was reached.
func hasPath(grid [][]Cell, start, end Position) bool {
	return search(grid, start, end, nil)
}

// shortestPath returns the cells of a shortest start-to-end route, both included.
func shortestPath(grid [][]Cell, start, end Position) []Position {
	size := len(grid)
	parents := make(map[Position]Position, size)
	if !search(grid, start, end, parents) {
		return nil
	}

	path := []Position{end}
	for cur := end; cur != start; {
		cur = parents[cur]
		path = append(path, cur)
	}

	// Reverse into start-to-end order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// search is a 4-directional BFS. When parents is non-nil it records, for each
// reached cell, the cell it was reached from.
func search(grid [][]Cell, start, end Position, parents map[Position]Position) bool {
	size := len(grid)
	if !inBound(size, start) || !inBound(size, end) {
		return false
	}
	if !grid[start.Y][start.X].Type.Passable() {
		return false
	}

	visited := make([][]bool, size)
	for y := range visited {
		visited[y] = make([]bool, size)
	}

	var queue deque.Deque
	queue.PushBack(start)
	visited[start.Y][start.X] = true

	for queue.Len() > 0 {
		cur := queue.PopFront().(Position)
		if cur == end {
			return true
		}

		for _, d := range Directions {
			next := cur.Add(d.Offset())
			if !inBound(size, next) || visited[next.Y][next.X] {
				continue
			}
			if !grid[next.Y][next.X].Type.Passable() {
				continue
			}
			visited[next.Y][next.X] = true
			if parents != nil {
				parents[next] = cur
			}
			queue.PushBack(next)
		}
	}

	return false
}
