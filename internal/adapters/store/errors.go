package store

import "errors"

// Sentinel kinds for persistence.
var (
	ErrNothingToPersist = errors.New("no critical events to persist")
	ErrNoSnapshot       = errors.New("no snapshot found")
)
