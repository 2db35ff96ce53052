package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/freightpulse/freightpulse/internal/core/calculation"
)

var (
	// ErrAnalysis marks expected analysis failures such as a missing period or no data.
	// Analyze records them on a failed result; Compare returns them.
	ErrAnalysis = errors.New("analysis failed")

	// ErrInvalidRequest marks request validation errors that should return HTTP 400.
	ErrInvalidRequest = errors.New("invalid analysis request")
)

func analysisErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrAnalysis, fmt.Sprintf(format, args...))
}

func invalidRequestf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// failureMessage is the error_message stored on a failed result.
// Analysis failures keep their bare message, e.g. "Time period not found".
func failureMessage(err error) string {
	msg := err.Error()
	if errors.Is(err, ErrAnalysis) {
		return strings.TrimPrefix(msg, ErrAnalysis.Error()+": ")
	}
	return msg
}

// propagates reports whether err must reach the caller alongside the failed result.
func propagates(err error) bool {
	return errors.Is(err, calculation.ErrInvalidInput)
}
