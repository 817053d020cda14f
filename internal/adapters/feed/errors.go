package feed

import "errors"

// Sentinel kinds for feed failures.
var (
	ErrBadStatus  = errors.New("feed returned non-success status")
	ErrBadPayload = errors.New("feed body is not decodable JSON")
)
