package mines

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMined(f *Field) (n int) {
	for _, c := range f.cells {
		if c.mined {
			n++
		}
	}
	return
}

func TestNewFieldInvalidDimension(t *testing.T) {
	tests := []struct {
		name          string
		height, width int
	}{
		{"zero height", 0, 5},
		{"zero width", 5, 0},
		{"negative height", -1, 5},
		{"negative width", 5, -3},
		{"area overflows int", math.MaxInt/2 + 1, 3},
		{"max int squared", math.MaxInt, math.MaxInt},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := NewField(test.height, test.width)
			assert.ErrorIs(t, err, ErrInvalidDimension)
			assert.Nil(t, f)
		})
	}
}

func TestNewFieldInvalidDensity(t *testing.T) {
	for _, d := range []float64{-0.1, 1, 1.5, math.NaN()} {
		_, err := NewField(3, 3, WithDensity(d))
		assert.ErrorIs(t, err, ErrInvalidDensity, "density %v", d)
	}
}

func TestNewFieldRejectsFullyMined(t *testing.T) {
	tests := []struct {
		name          string
		height, width int
		density       float64
	}{
		{"1x1 half", 1, 1, 0.5},
		{"2x1 rounds up to both", 2, 1, 0.75},
		{"3x3 dense", 3, 3, 0.95},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := NewField(test.height, test.width, WithDensity(test.density))
			assert.ErrorIs(t, err, ErrInvalidDensity)
			assert.Nil(t, f)
		})
	}

	f, err := NewField(2, 1, WithDensity(0.5), WithRand(rand.New(rand.NewPCG(1, 1))))
	require.NoError(t, err)
	assert.Equal(t, 1, f.MineCount())
	assert.False(t, f.IsWon())
}

func TestAdjacency(t *testing.T) {
	f, err := NewField(3, 4, WithMines())
	require.NoError(t, err)

	tests := []struct {
		pos  Position
		want int
	}{
		{Position{0, 0}, 3},
		{Position{0, 3}, 3},
		{Position{2, 0}, 3},
		{Position{2, 3}, 3},
		{Position{0, 1}, 5},
		{Position{1, 0}, 5},
		{Position{1, 1}, 8},
		{Position{1, 2}, 8},
	}
	for _, test := range tests {
		c, err := f.Cell(test.pos)
		require.NoError(t, err)
		assert.Equal(t, test.want, c.Adjacent(), "neighbours of %s", test.pos)
		assert.Equal(t, test.pos, c.Position())
	}

	single, err := NewField(1, 1, WithMines())
	require.NoError(t, err)
	c, err := single.Cell(Position{0, 0})
	require.NoError(t, err)
	assert.Zero(t, c.Adjacent())
}

func TestMineCount(t *testing.T) {
	tests := []struct {
		name          string
		height, width int
		density       float64
	}{
		{"1x1", 1, 1, DefaultDensity},
		{"3x3", 3, 3, DefaultDensity},
		{"15x9", 15, 9, DefaultDensity},
		{"16x30", 16, 30, DefaultDensity},
		{"8x8 empty", 8, 8, 0},
		{"10x10 dense", 10, 10, 0.8},
		{"1x40", 1, 40, 0.5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			for range 20 {
				f, err := NewField(
					test.height, test.width,
					WithDensity(test.density), WithRand(r),
				)
				require.NoError(t, err)

				want := int(math.Round(
					float64(test.height*test.width) * test.density,
				))
				assert.Equal(t, want, f.MineCount())
				assert.Equal(t, want, countMined(f))
			}
		})
	}
}

func TestMineCountStableAfterMoves(t *testing.T) {
	f, err := NewField(9, 9, WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)
	before := countMined(f)

	for row := range 9 {
		for col := range 9 {
			p := Position{row, col}
			require.NoError(t, f.Flag(p))
			require.NoError(t, f.Flag(p))
			_, err := f.Reveal(p)
			require.NoError(t, err)
		}
	}
	f.RevealAllMines()

	assert.Equal(t, before, countMined(f))
	assert.Equal(t, before, f.MineCount())
}

func TestWithMinesDeduplicates(t *testing.T) {
	f, err := NewField(3, 3, WithMines(Position{0, 0}, Position{0, 0}, Position{2, 1}))
	require.NoError(t, err)
	assert.Equal(t, 2, f.MineCount())
	assert.Equal(t, 2, countMined(f))
}

func TestWithMinesOutOfBounds(t *testing.T) {
	_, err := NewField(3, 3, WithMines(Position{3, 0}))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSingleCellField(t *testing.T) {
	f, err := NewField(1, 1)
	require.NoError(t, err)
	require.Zero(t, f.MineCount())

	assert.False(t, f.IsWon())

	n, err := f.Reveal(Position{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, f.IsWon())
	assert.False(t, f.IsLost())
	assert.True(t, f.IsDone())
}

func TestRevealNumberedCellDoesNotCascade(t *testing.T) {
	f, err := NewField(3, 3, WithMines(Position{0, 0}, Position{2, 2}))
	require.NoError(t, err)

	n, err := f.Reveal(Position{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.RevealedCount())

	s := f.Snapshot()
	assert.Equal(t, CellState(2), s.At(Position{1, 1}).State())
	assert.False(t, f.IsDone())
}

func TestRevealCascadeWholeField(t *testing.T) {
	f, err := NewField(5, 5, WithMines(Position{4, 4}))
	require.NoError(t, err)

	n, err := f.Reveal(Position{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	assert.Equal(t, 24, f.RevealedCount())
	assert.True(t, f.IsWon())
	assert.False(t, f.IsLost())

	c, err := f.Cell(Position{4, 4})
	require.NoError(t, err)
	assert.False(t, c.Revealed())

	s := f.Snapshot()
	for _, p := range []Position{{3, 3}, {3, 4}, {4, 3}} {
		assert.Equal(t, CellState(1), s.At(p).State(), "ring cell %s", p)
	}
	assert.Equal(t, CellState(0), s.At(Position{2, 2}).State())
}

func TestRevealCascadeStopsAtRegionBorder(t *testing.T) {
	// a full column of mines splits the field in two
	var wall []Position
	for row := range 5 {
		wall = append(wall, Position{row, 2})
	}
	f, err := NewField(5, 5, WithMines(wall...))
	require.NoError(t, err)

	n, err := f.Reveal(Position{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	for row := range 5 {
		for col := range 5 {
			c, err := f.Cell(Position{row, col})
			require.NoError(t, err)
			assert.Equal(t, col < 2, c.Revealed(), "cell %d:%d", row, col)
		}
	}
	assert.False(t, f.IsWon())
	assert.False(t, f.IsLost())
}

func TestRevealCascadeMatchesFloodFill(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for range 50 {
		f, err := NewField(12, 12, WithRand(r))
		require.NoError(t, err)

		start := -1
		for i, c := range f.cells {
			if !c.mined && c.neighborMineCount(f.cells) == 0 {
				start = i
				break
			}
		}
		if start < 0 {
			continue
		}

		// independent breadth-first flood fill
		want := map[int]bool{start: true}
		queue := []int{start}
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			if f.cells[i].neighborMineCount(f.cells) != 0 {
				continue
			}
			for _, j := range f.cells[i].adjacent {
				if !want[j] {
					want[j] = true
					queue = append(queue, j)
				}
			}
		}

		n, err := f.Reveal(f.positionOf(start))
		require.NoError(t, err)
		assert.Equal(t, len(want), n)
		for i, c := range f.cells {
			assert.Equal(t, want[i], c.revealed, "cell %s", c.pos)
			if c.revealed {
				assert.False(t, c.mined)
			}
		}
	}
}

func TestRevealIsIdempotent(t *testing.T) {
	f, err := NewField(5, 5, WithMines(Position{4, 4}))
	require.NoError(t, err)

	n, err := f.Reveal(Position{0, 0})
	require.NoError(t, err)
	require.Equal(t, 24, n)
	before := f.Snapshot()

	for _, p := range []Position{{0, 0}, {2, 2}, {3, 3}} {
		n, err := f.Reveal(p)
		require.NoError(t, err)
		assert.Zero(t, n, "re-revealing %s", p)
	}
	assert.Equal(t, before, f.Snapshot())
}

func TestRevealFlaggedCellIsNoop(t *testing.T) {
	f, err := NewField(3, 3, WithMines(Position{0, 0}))
	require.NoError(t, err)

	p := Position{1, 1}
	require.NoError(t, f.Flag(p))

	n, err := f.Reveal(p)
	require.NoError(t, err)
	assert.Zero(t, n)

	c, err := f.Cell(p)
	require.NoError(t, err)
	assert.True(t, c.Flagged())
	assert.False(t, c.Revealed())
}

func TestFlagBlocksCascade(t *testing.T) {
	f, err := NewField(5, 5, WithMines())
	require.NoError(t, err)
	require.NoError(t, f.Flag(Position{2, 2}))

	n, err := f.Reveal(Position{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	c, err := f.Cell(Position{2, 2})
	require.NoError(t, err)
	assert.True(t, c.Flagged())
	assert.False(t, c.Revealed())
	assert.False(t, f.IsWon())

	require.NoError(t, f.Flag(Position{2, 2}))
	n, err = f.Reveal(Position{2, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, f.IsWon())
}

func TestFlagToggle(t *testing.T) {
	f, err := NewField(2, 2, WithMines(Position{0, 0}))
	require.NoError(t, err)
	p := Position{1, 1}

	require.NoError(t, f.Flag(p))
	c, _ := f.Cell(p)
	assert.True(t, c.Flagged())
	assert.Equal(t, 0, f.MinesRemaining())

	require.NoError(t, f.Flag(p))
	c, _ = f.Cell(p)
	assert.False(t, c.Flagged())
	assert.Equal(t, 1, f.MinesRemaining())
}

func TestFlagRevealedCellIsNoop(t *testing.T) {
	f, err := NewField(2, 2, WithMines(Position{0, 0}))
	require.NoError(t, err)
	p := Position{1, 1}

	_, err = f.Reveal(p)
	require.NoError(t, err)
	require.NoError(t, f.Flag(p))

	c, _ := f.Cell(p)
	assert.True(t, c.Revealed())
	assert.False(t, c.Flagged())
}

func TestRevealMine(t *testing.T) {
	f, err := NewField(3, 3, WithMines(Position{0, 0}, Position{2, 2}))
	require.NoError(t, err)

	n, err := f.Reveal(Position{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.RevealedCount())
	assert.True(t, f.IsLost())
	assert.True(t, f.IsDone())
	assert.Equal(t, Lost, f.Status())

	v := f.Snapshot().At(Position{0, 0})
	assert.True(t, v.Mined)
	assert.True(t, v.Detonated)
	assert.Equal(t, ExplodedMine, v.State())
}

func TestWinIgnoresFlags(t *testing.T) {
	f, err := NewField(2, 2, WithMines(Position{0, 0}))
	require.NoError(t, err)

	for _, p := range []Position{{0, 1}, {1, 0}} {
		_, err := f.Reveal(p)
		require.NoError(t, err)
	}
	assert.False(t, f.IsWon())

	require.NoError(t, f.Flag(Position{0, 0}))
	assert.False(t, f.IsWon())
	require.NoError(t, f.Flag(Position{1, 1}))
	assert.False(t, f.IsWon())
	require.NoError(t, f.Flag(Position{1, 1}))

	_, err = f.Reveal(Position{1, 1})
	require.NoError(t, err)
	assert.True(t, f.IsWon())
	assert.Equal(t, f.Height()*f.Width()-f.MineCount(), f.RevealedCount())

	require.NoError(t, f.Flag(Position{0, 0}))
	assert.True(t, f.IsWon())
	assert.Equal(t, Won, f.Status())
}

func TestRevealAllMines(t *testing.T) {
	mined := []Position{{0, 0}, {1, 3}, {3, 1}}
	f, err := NewField(4, 4, WithMines(mined...))
	require.NoError(t, err)

	require.NoError(t, f.Flag(Position{0, 0}))
	require.NoError(t, f.Flag(Position{2, 2}))
	_, err = f.Reveal(Position{3, 3})
	require.NoError(t, err)
	before := f.Snapshot()

	f.RevealAllMines()
	after := f.Snapshot()

	for row := range 4 {
		for col := range 4 {
			p := Position{row, col}
			c, err := f.Cell(p)
			require.NoError(t, err)
			if c.Mined() {
				assert.True(t, c.Revealed(), "mine %s", p)
				assert.False(t, c.Flagged(), "mine %s", p)
				assert.Equal(t, Mine, after.At(p).State())
			} else {
				assert.Equal(t, before.At(p), after.At(p), "safe cell %s", p)
			}
		}
	}
	assert.True(t, f.IsLost())
}

func TestOutOfBounds(t *testing.T) {
	f, err := NewField(4, 3, WithMines(Position{1, 1}))
	require.NoError(t, err)
	before := f.Snapshot()

	for _, p := range []Position{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		_, err := f.Reveal(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "reveal %s", p)
		assert.ErrorIs(t, f.Flag(p), ErrOutOfBounds, "flag %s", p)
		_, err = f.Cell(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "cell %s", p)
		_, err = f.NeighborMineCount(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "count %s", p)
	}
	assert.Equal(t, before, f.Snapshot())
}

func TestNeighborMineCount(t *testing.T) {
	f, err := NewField(3, 3, WithMines(Position{0, 0}, Position{2, 2}))
	require.NoError(t, err)

	tests := map[Position]int{
		{1, 1}: 2,
		{0, 1}: 1,
		{0, 2}: 0,
		{2, 0}: 0,
		{2, 1}: 1,
	}
	for p, want := range tests {
		n, err := f.NeighborMineCount(p)
		require.NoError(t, err)
		assert.Equal(t, want, n, "cell %s", p)
	}
}
