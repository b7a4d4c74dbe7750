package maze

import (
	"fmt"
	"math"
)

const (
	upFirstCarveProb   = 0.6 // Chance each visited cell is carved.
	upFirstMinFraction = 0.5 // Minimum share of the vertical distance climbed first.
	upFirstSpread      = 0.2 // Random extra share on top of upFirstMinFraction.

	diagonalTurnProb  = 0.5 // Chance to pick an axis at random while both need progress.
	diagonalAxisProb  = 0.5 // Chance that random pick is the x axis.
	diagonalCarveProb = 0.5

	zigzagClimbProb       = 0.5 // Chance each attempt moves one row up.
	zigzagMaxRun          = 3   // Horizontal runs are 1 to zigzagMaxRun cells long.
	zigzagCarveProb       = 0.4
	zigzagFinishCarveProb = 0.5
	zigzagAttemptsPerRow  = 4 // Bounds the climb loop so a skewed source cannot stall it.
)

// Strategy is a directed heuristic that carves a rough route from start toward end.
type Strategy int

const (
	UpFirst  Strategy = iota // Climb most of the way, then run right.
	Diagonal                 // Staircase toward the end, mixing axes randomly.
	Zigzag                   // Climb while sweeping left and right, then run right.
)

// Strategies lists every strategy; random picks index into it.
var Strategies = []Strategy{UpFirst, Diagonal, Zigzag}

func (s Strategy) String() string {
	switch s {
	case UpFirst:
		return "up-first"
	case Diagonal:
		return "diagonal"
	case Zigzag:
		return "zigzag"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// apply runs the strategy once on the working grid.
func (s Strategy) apply(c *carver) {
	switch s {
	case UpFirst:
		c.upFirst()
	case Diagonal:
		c.diagonal()
	case Zigzag:
		c.zigzag()
	default:
		panic(fmt.Sprintf("maze: unknown strategy %d", int(s)))
	}
}

// upFirst climbs a random 50-70% of the rows, then runs right to the end column.
// Movement always advances; only the carving is probabilistic.
func (c *carver) upFirst() {
	cur := c.start
	fraction := upFirstMinFraction + c.rng.Float64()*upFirstSpread
	upSteps := int(math.Round(float64(c.start.Y-c.end.Y) * fraction))

	for i := 0; i < upSteps && cur.Y > c.end.Y; i++ {
		cur.Y--
		if c.chance(upFirstCarveProb) {
			c.carve(cur)
		}
	}

	for cur.X < c.end.X {
		cur.X++
		if c.chance(upFirstCarveProb) {
			c.carve(cur)
		}
	}
}

// diagonal steps toward the end one axis at a time until it arrives.
func (c *carver) diagonal() {
	cur := c.start
	for cur.X < c.end.X || cur.Y > c.end.Y {
		needX, needY := cur.X < c.end.X, cur.Y > c.end.Y
		switch {
		case needX && needY && c.chance(diagonalTurnProb):
			if c.chance(diagonalAxisProb) {
				cur.X++
			} else {
				cur.Y--
			}
		case needX:
			cur.X++
		default:
			cur.Y--
		}

		if c.chance(diagonalCarveProb) {
			c.carve(cur)
		}
	}
}

// zigzag alternates one-row climbs with short horizontal runs whose direction
// flips every time, then runs right to the end column.
func (c *carver) zigzag() {
	cur := c.start
	dir := 1
	maxAttempts := zigzagAttemptsPerRow * (c.start.Y - c.end.Y + 1)

	for attempt := 0; cur.Y > c.end.Y && attempt < maxAttempts; attempt++ {
		if c.chance(zigzagClimbProb) {
			cur.Y--
			c.carve(cur)
		}

		run := 1 + c.rng.Intn(zigzagMaxRun)
		for i := 0; i < run; i++ {
			next := Position{X: cur.X + dir, Y: cur.Y}
			if !c.inBound(next) {
				continue
			}
			cur = next
			if c.chance(zigzagCarveProb) {
				c.carve(cur)
			}
		}
		dir = -dir
	}

	for cur.X < c.end.X {
		cur.X++
		if c.chance(zigzagFinishCarveProb) {
			c.carve(cur)
		}
	}
}
