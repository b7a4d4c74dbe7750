package maze

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource returns the same draws forever.
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }

func (s fixedSource) Intn(n int) int {
	if s.n < n {
		return s.n
	}
	return n - 1
}

func mustGenerator(t *testing.T, c Config, opts ...Option) *Generator {
	t.Helper()
	g, err := New(c, opts...)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"smallest grid", Config{GridSize: 1, PathDensity: 0}, nil},
		{"default game grid", Config{GridSize: 25, PathDensity: 0.18}, nil},
		{"full density", Config{GridSize: 8, PathDensity: 1}, nil},
		{"zero grid", Config{GridSize: 0, PathDensity: 0.5}, ErrInvalidGridSize},
		{"negative grid", Config{GridSize: -3, PathDensity: 0.5}, ErrInvalidGridSize},
		{"negative density", Config{GridSize: 5, PathDensity: -0.1}, ErrInvalidPathDensity},
		{"density above one", Config{GridSize: 5, PathDensity: 1.01}, ErrInvalidPathDensity},
		{"NaN density", Config{GridSize: 5, PathDensity: math.NaN()}, ErrInvalidPathDensity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.config)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, g)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.config, g.Config())
		})
	}
}

func TestGenerateStartAndEnd(t *testing.T) {
	for _, size := range []int{1, 2, 8, 25, 50} {
		g := mustGenerator(t, Config{GridSize: size, PathDensity: 0.18}, WithSeed(int64(size)))
		for i := 0; i < 20; i++ {
			m := g.Generate()
			require.Equal(t, size, m.Size())

			start, _ := m.CellAt(Position{X: 0, Y: size - 1})
			end, _ := m.CellAt(Position{X: size - 1, Y: 0})
			assert.Equal(t, End, end.Type)
			assert.Equal(t, 1, m.Count(End))

			if size == 1 {
				assert.Equal(t, m.Start(), m.End())
				assert.Equal(t, 0, m.Count(Start))
				continue
			}
			assert.Equal(t, Start, start.Type)
			assert.Equal(t, 1, m.Count(Start))
			assert.Equal(t, size*size, m.Count(Start)+m.Count(End)+m.Count(Wall)+m.Count(Path))
		}
	}
}

func TestGenerateAlwaysConnected(t *testing.T) {
	sizes := []int{1, 2, 3, 5, 8, 13, 25, 50}
	densities := []float64{0, 0.05, 0.18, 0.5, 1}
	perCombination := 10000 / (len(sizes) * len(densities))

	total := 0
	for _, size := range sizes {
		for _, density := range densities {
			g := mustGenerator(t, Config{GridSize: size, PathDensity: density}, WithSeed(int64(size*1000)+int64(density*100)))
			for i := 0; i < perCombination; i++ {
				m := g.Generate()
				if !assert.NoError(t, m.Validate(), "size=%d density=%v\n%s", size, density, m) {
					return
				}
				total++
			}
		}
	}
	assert.Equal(t, 10000, total)
}

func TestGenerateCellPositions(t *testing.T) {
	m := mustGenerator(t, Config{GridSize: 12, PathDensity: 0.3}, WithSeed(3)).Generate()
	for y, row := range m.Grid() {
		for x, c := range row {
			assert.Equal(t, Position{X: x, Y: y}, c.Position)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	c := Config{GridSize: 25, PathDensity: 0.18}

	t.Run("same seed", func(t *testing.T) {
		a := mustGenerator(t, c, WithSeed(99))
		b := mustGenerator(t, c, WithSeed(99))
		for i := 0; i < 10; i++ {
			assert.Equal(t, a.Generate().Rows(), b.Generate().Rows())
		}
	})

	t.Run("same source state", func(t *testing.T) {
		g := mustGenerator(t, c)
		first := g.GenerateFrom(rand.New(rand.NewSource(5)))
		second := g.GenerateFrom(rand.New(rand.NewSource(5)))
		assert.Equal(t, first.Rows(), second.Rows())
	})

	t.Run("fresh draws differ", func(t *testing.T) {
		g := mustGenerator(t, c, WithSeed(1))
		first := g.Generate()
		different := false
		for i := 0; i < 10 && !different; i++ {
			different = !assert.ObjectsAreEqual(first.Rows(), g.Generate().Rows())
		}
		assert.True(t, different)
	})
}

func TestGenerateSingleCell(t *testing.T) {
	g := mustGenerator(t, Config{GridSize: 1, PathDensity: 1}, WithSeed(11))
	for i := 0; i < 50; i++ {
		m := g.Generate()
		assert.Equal(t, []string{"E"}, m.Rows())
		assert.Equal(t, Position{X: 0, Y: 0}, m.Start())
		assert.True(t, m.HasPath())
		assert.Equal(t, []Position{{X: 0, Y: 0}}, m.SolutionPath())
		assert.NoError(t, m.Validate())
	}
}

func TestGenerateFallbackPath(t *testing.T) {
	// Every probability roll fails, so only the unconditional fallback carves.
	g := mustGenerator(t, Config{GridSize: 4, PathDensity: 0}, WithSource(fixedSource{f: 0.99}))
	m := g.Generate()

	assert.Equal(t, []string{
		"###E",
		"##..",
		"#..#",
		"S.##",
	}, m.Rows())
	assert.NoError(t, m.Validate())
	assert.Len(t, m.SolutionPath(), 7)
}

func TestGenerateDensitySensitivity(t *testing.T) {
	const runs = 1000
	densities := []float64{0, 0.25, 0.5, 0.75, 1}

	prev := -1.0
	for _, density := range densities {
		g := mustGenerator(t, Config{GridSize: 25, PathDensity: density}, WithSeed(2024))
		sum := 0.0
		for i := 0; i < runs; i++ {
			sum += g.Generate().PathCoverage()
		}
		mean := sum / runs
		assert.Greater(t, mean, prev, "density %v", density)
		prev = mean
	}
}

func TestGenerateConcurrent(t *testing.T) {
	g := mustGenerator(t, Config{GridSize: 20, PathDensity: 0.2}, WithSeed(8))

	var wg sync.WaitGroup
	errs := make(chan error, 8*25)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				errs <- g.Generate().Validate()
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
