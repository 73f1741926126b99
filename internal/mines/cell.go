package mines

// Cell is a single square of a [Field]. Its neighbours are kept as indices
// into the owning field's cell table, so a Cell is only meaningful together
// with the field it came from.
type Cell struct {
	pos      Position
	mined    bool
	flagged  bool
	revealed bool
	adjacent []int
}

func (c Cell) Position() Position { return c.pos }
func (c Cell) Mined() bool        { return c.mined }
func (c Cell) Flagged() bool      { return c.flagged }
func (c Cell) Revealed() bool     { return c.revealed }

// Adjacent returns the number of neighbours the cell has: 8 inside the grid,
// 5 along an edge, 3 in a corner (fewer on degenerate 1-wide grids).
func (c Cell) Adjacent() int { return len(c.adjacent) }

func (c *Cell) toggleFlag() {
	if c.revealed {
		return
	}
	c.flagged = !c.flagged
}

// reveal reports whether the cell went from concealed to revealed. Flagged
// and already revealed cells are left alone, which is what keeps the
// cascade from visiting a cell twice.
func (c *Cell) reveal() bool {
	if c.flagged || c.revealed {
		return false
	}
	c.revealed = true
	return true
}

func (c Cell) neighborMineCount(cells []Cell) int {
	n := 0
	for _, j := range c.adjacent {
		if cells[j].mined {
			n++
		}
	}
	return n
}
