package config

import (
	"fmt"

	"github.com/vancomm/minefield/internal/mines"
)

// Field holds the defaults for new games and the largest field a client may
// ask for. The defaults are the classic 15 rows by 9 columns.
type Field struct {
	Height   int
	Width    int
	Density  float64
	MaxCells int
}

func NewField() (*Field, error) {
	height, err := lookupInt("FIELD_HEIGHT", 15)
	if err != nil {
		return nil, err
	}

	width, err := lookupInt("FIELD_WIDTH", 9)
	if err != nil {
		return nil, err
	}

	density, err := lookupFloat("FIELD_DENSITY", mines.DefaultDensity)
	if err != nil {
		return nil, err
	}

	maxCells, err := lookupInt("FIELD_MAX_CELLS", 10_000)
	if err != nil {
		return nil, err
	}

	cfg := &Field{
		Height:   height,
		Width:    width,
		Density:  density,
		MaxCells: maxCells,
	}

	if err := cfg.Validate(height, width, density); err != nil {
		return nil, fmt.Errorf("invalid field defaults: %w", err)
	}

	return cfg, nil
}

// Validate checks requested dimensions and density against the limits.
func (c Field) Validate(height, width int, density float64) error {
	if height <= 0 || width <= 0 {
		return fmt.Errorf("%w: height = %d, width = %d",
			mines.ErrInvalidDimension, height, width)
	}
	if c.MaxCells > 0 && height > c.MaxCells/width {
		return fmt.Errorf("%w: %dx%d exceeds %d cells",
			mines.ErrInvalidDimension, height, width, c.MaxCells)
	}
	if !(0 <= density && density < 1) {
		return fmt.Errorf("%w: %v", mines.ErrInvalidDensity, density)
	}
	return nil
}
