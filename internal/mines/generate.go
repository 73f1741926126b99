package mines

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Above this density rejection sampling spends most of its draws on
// positions it already has, so placement switches to drawing from a
// shrinking candidate list.
const denseThreshold = 0.5

func mineCountFor(cells int, density float64) int {
	return int(math.Round(float64(cells) * density))
}

func (f *Field) placeMines(n int, density float64, r *rand.Rand) {
	f.mineCount = n

	var chosen []int
	if density <= denseThreshold {
		chosen = f.sampleRejection(f.mineCount, r)
	} else {
		chosen = f.sampleCandidates(f.mineCount, r)
	}

	for _, i := range chosen {
		f.cells[i].mined = true
	}
}

// sampleRejection draws uniformly random positions until n distinct ones
// have been collected.
func (f *Field) sampleRejection(n int, r *rand.Rand) []int {
	seen := make(map[Position]struct{}, n)
	chosen := make([]int, 0, n)
	for len(chosen) < n {
		p := Position{Row: r.IntN(f.height), Col: r.IntN(f.width)}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		chosen = append(chosen, f.indexOf(p))
	}
	return chosen
}

// sampleCandidates writes down every index and picks n off the list at
// random, moving the last candidate into each picked slot.
func (f *Field) sampleCandidates(n int, r *rand.Rand) []int {
	candidates := make([]int, len(f.cells))
	for i := range candidates {
		candidates[i] = i
	}

	chosen := make([]int, 0, n)
	k := len(candidates)
	for range n {
		i := r.IntN(k)
		chosen = append(chosen, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return chosen
}

func (f *Field) setMines(positions []Position) error {
	for _, p := range positions {
		i, err := f.lookup(p)
		if err != nil {
			return fmt.Errorf("unable to place mine: %w", err)
		}
		if !f.cells[i].mined {
			f.cells[i].mined = true
			f.mineCount++
		}
	}
	return nil
}
