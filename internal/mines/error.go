package mines

import "errors"

var (
	ErrInvalidDimension = errors.New("invalid field dimension")
	ErrInvalidDensity   = errors.New("invalid mine density")
	ErrOutOfBounds      = errors.New("position out of bounds")
)
