package feature

import "errors"

// Error kinds raised while extracting a base elevation from a point dataset.
// Callers test these with errors.Is; they all represent bad input rather than
// processing failure.
var (
	ErrEmptyInput       = errors.New("point dataset is empty or invalid")
	ErrInvalidGeometry  = errors.New("point geometry is empty")
	ErrInvalidValue     = errors.New("elevation value is not a number")
	ErrMissingElevation = errors.New("no z coordinate in geometry or attributes")
)
