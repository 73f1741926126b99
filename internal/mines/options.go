package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

const DefaultDensity = 0.15

type options struct {
	density float64
	rnd     *rand.Rand
	mines   []Position
	forced  bool
}

type Option func(*options)

// WithDensity sets the fraction of cells that get a mine. It must lie in
// [0, 1).
func WithDensity(d float64) Option {
	return func(o *options) {
		o.density = d
	}
}

func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rnd = r
	}
}

// WithMines skips random placement and mines exactly the given positions.
// Repeated positions count once.
func WithMines(positions ...Position) Option {
	return func(o *options) {
		o.forced = true
		o.mines = append(o.mines, positions...)
	}
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}
