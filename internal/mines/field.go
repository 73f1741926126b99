package mines

import (
	"fmt"
	"math"
)

// Field is the board of a single game. It is not safe for concurrent use;
// whoever owns a Field must serialise calls to it.
type Field struct {
	height, width int
	mineCount     int
	cells         []Cell

	// index of the first mine the player revealed, -1 while there is none
	detonated int
}

func NewField(height, width int, opts ...Option) (*Field, error) {
	if height <= 0 || width <= 0 || height > math.MaxInt/width {
		return nil, fmt.Errorf(
			"%w: height = %d, width = %d", ErrInvalidDimension, height, width,
		)
	}

	o := options{density: DefaultDensity}
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(o.density) || o.density < 0 || o.density >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDensity, o.density)
	}

	f := &Field{
		height:    height,
		width:     width,
		cells:     make([]Cell, height*width),
		detonated: -1,
	}
	for i := range f.cells {
		f.cells[i].pos = f.positionOf(i)
	}

	/*
	 * Neighbours can only be bound once every cell exists.
	 */
	f.bindAdjacency()

	if o.forced {
		if err := f.setMines(o.mines); err != nil {
			return nil, err
		}
		return f, nil
	}

	// a field with no safe cell would be won before the first move
	n := mineCountFor(len(f.cells), o.density)
	if n >= len(f.cells) {
		return nil, fmt.Errorf(
			"%w: %v would mine all %d cells", ErrInvalidDensity, o.density, len(f.cells),
		)
	}

	if o.rnd == nil {
		o.rnd = NewRand()
	}
	f.placeMines(n, o.density, o.rnd)

	return f, nil
}

func (f *Field) bindAdjacency() {
	for i := range f.cells {
		c := &f.cells[i]
		c.adjacent = make([]int, 0, len(neighborhood))
		for _, d := range neighborhood {
			p := Position{Row: c.pos.Row + d.Row, Col: c.pos.Col + d.Col}
			if f.InBounds(p) {
				c.adjacent = append(c.adjacent, f.indexOf(p))
			}
		}
	}
}

func (f *Field) Height() int    { return f.height }
func (f *Field) Width() int     { return f.width }
func (f *Field) MineCount() int { return f.mineCount }

func (f *Field) InBounds(p Position) bool {
	return 0 <= p.Row && p.Row < f.height && 0 <= p.Col && p.Col < f.width
}

func (f *Field) indexOf(p Position) int {
	return p.Row*f.width + p.Col
}

func (f *Field) positionOf(i int) Position {
	return Position{Row: i / f.width, Col: i % f.width}
}

// lookup is the single bounds check every coordinate-taking method goes
// through.
func (f *Field) lookup(p Position) (int, error) {
	if !f.InBounds(p) {
		return 0, fmt.Errorf(
			"%w: %s outside %dx%d field", ErrOutOfBounds, p, f.height, f.width,
		)
	}
	return f.indexOf(p), nil
}

// Cell returns a copy of the cell at p.
func (f *Field) Cell(p Position) (Cell, error) {
	i, err := f.lookup(p)
	if err != nil {
		return Cell{}, err
	}
	return f.cells[i], nil
}

// NeighborMineCount returns how many of the cells around p are mined.
func (f *Field) NeighborMineCount(p Position) (int, error) {
	i, err := f.lookup(p)
	if err != nil {
		return 0, err
	}
	return f.cells[i].neighborMineCount(f.cells), nil
}

// Flag toggles the flag on the cell at p. Flagging a revealed cell does
// nothing.
func (f *Field) Flag(p Position) error {
	i, err := f.lookup(p)
	if err != nil {
		return err
	}
	f.cells[i].toggleFlag()
	return nil
}

// Reveal opens the cell at p and returns how many cells were revealed as a
// result. Revealing a cell with no mined neighbours cascades over its whole
// zero-count region plus the ring of numbered cells bordering it. Flagged
// and already revealed cells are left alone and yield 0.
func (f *Field) Reveal(p Position) (int, error) {
	i, err := f.lookup(p)
	if err != nil {
		return 0, err
	}

	if !f.cells[i].reveal() {
		return 0, nil
	}

	if f.cells[i].mined {
		if f.detonated < 0 {
			f.detonated = i
		}
		return 1, nil
	}

	return 1 + f.cascade(i), nil
}

// cascade walks the zero-count region around start with an explicit stack.
// A cell is pushed only after reveal flipped it, and revealed never goes
// back to false, so every cell is pushed at most once.
func (f *Field) cascade(start int) int {
	revealed := 0
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.cells[i].neighborMineCount(f.cells) != 0 {
			continue
		}

		for _, j := range f.cells[i].adjacent {
			// a neighbour of a zero-count cell is never mined
			if f.cells[j].reveal() {
				revealed++
				stack = append(stack, j)
			}
		}
	}
	return revealed
}

// RevealAllMines opens every mined cell, flagged or not, for the end of game
// display. Flags on mines are dropped since a cell can't be both flagged and
// revealed.
func (f *Field) RevealAllMines() {
	for i := range f.cells {
		c := &f.cells[i]
		if c.mined {
			c.flagged = false
			c.revealed = true
		}
	}
}

func (f *Field) IsWon() bool {
	for _, c := range f.cells {
		if !c.mined && !c.revealed {
			return false
		}
	}
	return true
}

func (f *Field) IsLost() bool {
	for _, c := range f.cells {
		if c.mined && c.revealed {
			return true
		}
	}
	return false
}

func (f *Field) IsDone() bool {
	return f.IsWon() || f.IsLost()
}

// Status collapses the predicates into one value. If the player has already
// lost, don't let them win as well.
func (f *Field) Status() Status {
	switch {
	case f.IsLost():
		return Lost
	case f.IsWon():
		return Won
	default:
		return Playing
	}
}

func (f *Field) RevealedCount() int {
	n := 0
	for _, c := range f.cells {
		if c.revealed {
			n++
		}
	}
	return n
}

func (f *Field) FlaggedCount() int {
	n := 0
	for _, c := range f.cells {
		if c.flagged {
			n++
		}
	}
	return n
}

// MinesRemaining is the mine count minus the flags placed. It goes negative
// when the player over-flags.
func (f *Field) MinesRemaining() int {
	return f.mineCount - f.FlaggedCount()
}
