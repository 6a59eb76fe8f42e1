package user

import "strings"

// ValidationError carries every signup payload violation found at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid signup payload: " + strings.Join(e.Violations, "; ")
}
