package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is matched by every square notation failure.
var ErrInvalidSquare = errors.New("invalid square")

// NotationError reports malformed square notation.
type NotationError struct {
	Input  string
	Reason string
}

func (e *NotationError) Error() string {
	return fmt.Sprintf("invalid square %q: %s", e.Input, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidSquare.
func (e *NotationError) Unwrap() error {
	return ErrInvalidSquare
}
