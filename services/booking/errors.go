package booking

import (
	"errors"
	"strings"
)

// ErrNotOwner is returned when a caller touches a booking they do not own.
var ErrNotOwner = errors.New("booking does not belong to the caller")

// ValidationError carries every payload violation found, so clients get the
// complete list in one response instead of fixing fields one at a time.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid booking payload: " + strings.Join(e.Violations, "; ")
}
