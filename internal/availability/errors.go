package availability

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("requested interval conflicts with an existing booking")
	ErrCapabilityViolation = errors.New("duration not permitted for this spot")
)
