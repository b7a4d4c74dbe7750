package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotTypes(c *carver) [][]CellType {
	types := make([][]CellType, c.size)
	for y, row := range c.grid {
		types[y] = make([]CellType, c.size)
		for x, cell := range row {
			types[y][x] = cell.Type
		}
	}
	return types
}

// assertOnlyPromoted fails when a stage turned a passable cell into a wall or
// changed anything other than walls into paths.
func assertOnlyPromoted(t *testing.T, stage string, before [][]CellType, c *carver) {
	t.Helper()
	for y, row := range c.grid {
		for x, cell := range row {
			was := before[y][x]
			if was == cell.Type {
				continue
			}
			assert.True(t, was == Wall && cell.Type == Path,
				"%s changed (%d, %d) from %s to %s", stage, x, y, was, cell.Type)
		}
	}
}

func TestStagesNeverRegress(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		size := 1 + rng.Intn(40)
		density := rng.Float64()
		c := newCarver(size, rng)

		stages := []struct {
			name string
			run  func()
		}{
			{"random walks", c.randomWalks},
			{"scatter", func() { c.scatter(density * noiseFactor) }},
			{"strategy", func() { c.pickStrategy().apply(c) }},
			{"connectivity", c.ensureConnected},
			{"dead ends", c.addDeadEnds},
		}

		for _, stage := range stages {
			before := snapshotTypes(c)
			stage.run()
			assertOnlyPromoted(t, stage.name, before, c)
		}

		require.True(t, c.connected(), "seed %d", seed)
		assert.Equal(t, End, c.grid[c.end.Y][c.end.X].Type)
		if size > 1 {
			assert.Equal(t, Start, c.grid[c.start.Y][c.start.X].Type)
		}
	}
}

func TestCarve(t *testing.T) {
	c := newCarver(3, fixedSource{})

	assert.True(t, c.carve(Position{X: 1, Y: 1}))
	assert.False(t, c.carve(Position{X: 1, Y: 1}), "already a path")
	assert.False(t, c.carve(c.start))
	assert.False(t, c.carve(c.end))
	assert.False(t, c.carve(Position{X: -1, Y: 0}))
	assert.False(t, c.carve(Position{X: 0, Y: 3}))

	assert.Equal(t, Start, c.grid[2][0].Type)
	assert.Equal(t, End, c.grid[0][2].Type)
}

func TestStrategies(t *testing.T) {
	t.Run("names", func(t *testing.T) {
		assert.Equal(t, "up-first", UpFirst.String())
		assert.Equal(t, "diagonal", Diagonal.String())
		assert.Equal(t, "zigzag", Zigzag.String())
		assert.Len(t, Strategies, 3)
	})

	t.Run("diagonal connects when every roll succeeds", func(t *testing.T) {
		c := newCarver(9, fixedSource{f: 0})
		Diagonal.apply(c)
		assert.True(t, c.connected())
	})

	t.Run("zigzag connects when every roll succeeds", func(t *testing.T) {
		c := newCarver(9, fixedSource{f: 0})
		Zigzag.apply(c)
		assert.True(t, c.connected())
	})

	t.Run("up-first carves a climb then a run", func(t *testing.T) {
		c := newCarver(5, fixedSource{f: 0})
		UpFirst.apply(c)
		// round(4 * 0.5) rows are climbed from the start column.
		for y := 2; y <= 3; y++ {
			assert.Equal(t, Path, c.grid[y][0].Type)
		}
		for x := 1; x < 5; x++ {
			assert.Equal(t, Path, c.grid[2][x].Type)
		}
		assert.Equal(t, Wall, c.grid[1][0].Type)
	})

	t.Run("failing rolls carve nothing and terminate", func(t *testing.T) {
		for _, s := range Strategies {
			c := newCarver(10, fixedSource{f: 0.99})
			before := snapshotTypes(c)
			s.apply(c)
			assert.Equal(t, before, snapshotTypes(c), s.String())
		}
	})

	t.Run("unknown strategy panics", func(t *testing.T) {
		c := newCarver(3, fixedSource{})
		assert.Panics(t, func() { Strategy(42).apply(c) })
	})
}

func TestMonotonePath(t *testing.T) {
	for _, size := range []int{1, 2, 3, 6, 17} {
		c := newCarver(size, fixedSource{f: 0.99})
		c.carveMonotonePath()
		assert.True(t, c.connected(), "size %d", size)

		want := 0
		if size > 1 {
			want = 2*(size-1) - 1
		}
		count := 0
		for _, row := range c.grid {
			for _, cell := range row {
				if cell.Type == Path {
					count++
				}
			}
		}
		assert.Equal(t, want, count, "size %d", size)
	}
}
