package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned for a zero or negative width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrInvalidCoordinate is returned for a row or column outside the grid.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)
