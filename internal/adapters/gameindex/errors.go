package gameindex

import "errors"

// Sentinel kinds for index failures.
var (
	ErrBadStatus     = errors.New("index returned non-success status")
	ErrNoResultSets  = errors.New("index response carries no result sets")
	ErrMissingColumn = errors.New("index result set is missing a required column")
)
