package waterlevel

import "errors"

var (
	// ErrValidation reports rejected tool input, such as an empty layer name
	// or a non-positive flood level.
	ErrValidation = errors.New("invalid input")

	// ErrMissingSelection reports that no reference point layer was chosen
	// for a water level run.
	ErrMissingSelection = errors.New("no point layer selected")
)
