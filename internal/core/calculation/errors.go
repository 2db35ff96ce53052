package calculation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks caller mistakes: absent operands, empty series, bad window sizes.
var ErrInvalidInput = errors.New("invalid calculation input")

func invalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
