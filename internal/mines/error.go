package mines

import "errors"

var (
	ErrOutOfBounds          = errors.New("cell position out of bounds")
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrBusy                 = errors.New("game is handling another action")
)

// AssertionError reports a broken internal invariant.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return "assertion failed: " + e.message
}
