package session

import "errors"

// ErrMissingSessionID is returned when an update targets an empty id.
var ErrMissingSessionID = errors.New("session update failed: session id is required")
