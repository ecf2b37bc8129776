package build

import "errors"

// Precondition failures. None of them is fatal: the operation that returns
// one has changed nothing.
var (
	ErrNoSelection     = errors.New("building mode could not start: no structure selected")
	ErrAlreadyBuilding = errors.New("building mode could not start: already in building mode")
	ErrNothingToPlace  = errors.New("nothing to place: not in building mode")
)
