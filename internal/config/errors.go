package config

import "errors"

// Sentinel kinds for configuration validation.
var (
	ErrNoSeasons   = errors.New("seasons must not be empty")
	ErrBadAttempts = errors.New("max_attempts must be at least 1")
	ErrBadWindow   = errors.New("window_seconds must be positive")
	ErrBadPeriod   = errors.New("regulation_period must be positive")
	ErrBadTemplate = errors.New("endpoint template must contain a %s verb")
)
