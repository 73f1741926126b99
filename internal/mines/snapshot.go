package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Hidden       CellState = -2
	Flagged      CellState = -1
	Mine         CellState = 64
	ExplodedMine CellState = 65
	/*
	 * Every other value is a revealed safe cell:
	 *
	 * 	- 0 to 8 is the number of mined neighbours.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Hidden:
		return "-"
	case s == Flagged:
		return "F"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	case s == Mine:
		return "*"
	case s == ExplodedMine:
		return "X"
	default:
		return "?"
	}
}

// CellView is what a player may know about a cell. Mined is only ever true
// for revealed cells and NeighborMines is only set for revealed safe ones.
type CellView struct {
	Flagged       bool `json:"flagged"`
	Revealed      bool `json:"revealed"`
	Mined         bool `json:"mined"`
	Detonated     bool `json:"detonated,omitempty"`
	NeighborMines int  `json:"neighbor_mines"`
}

func (v CellView) State() CellState {
	switch {
	case v.Flagged:
		return Flagged
	case !v.Revealed:
		return Hidden
	case v.Detonated:
		return ExplodedMine
	case v.Mined:
		return Mine
	default:
		return CellState(v.NeighborMines)
	}
}

type Snapshot struct {
	Height int          `json:"height"`
	Width  int          `json:"width"`
	Cells  [][]CellView `json:"cells"`
}

func (f *Field) Snapshot() Snapshot {
	cells := make([][]CellView, f.height)
	for row := range f.height {
		cells[row] = make([]CellView, f.width)
		for col := range f.width {
			i := row*f.width + col
			c := f.cells[i]
			v := CellView{Flagged: c.flagged, Revealed: c.revealed}
			if c.revealed {
				if c.mined {
					v.Mined = true
					v.Detonated = i == f.detonated
				} else {
					v.NeighborMines = c.neighborMineCount(f.cells)
				}
			}
			cells[row][col] = v
		}
	}
	return Snapshot{Height: f.height, Width: f.width, Cells: cells}
}

// At returns the view of the cell at p. Like indexing a slice, it panics
// when p lies outside the snapshot.
func (s Snapshot) At(p Position) CellView {
	return s.Cells[p.Row][p.Col]
}

// States maps every cell of the snapshot to its CellState.
func (s Snapshot) States() [][]CellState {
	states := make([][]CellState, len(s.Cells))
	for row, cells := range s.Cells {
		states[row] = make([]CellState, len(cells))
		for col, v := range cells {
			states[row][col] = v.State()
		}
	}
	return states
}

func (s Snapshot) String() string {
	var b strings.Builder
	for _, cells := range s.Cells {
		for _, v := range cells {
			fmt.Fprint(&b, v.State().String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
