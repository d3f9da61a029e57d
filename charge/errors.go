package charge

import "errors"

var (
	// ErrValidation marks rejected numeric input
	ErrValidation = errors.New("invalid value")
	// ErrIndex marks an index outside the current sequence
	ErrIndex = errors.New("charge index out of range")
	// ErrCapacity marks an add beyond MaxCharges
	ErrCapacity = errors.New("charge limit reached")
)
