package entity

import "errors"

// Standard domain errors
var (
	ErrRateLimited     = errors.New("rate limit exceeded: too many requests from client")
	ErrPayloadTooLarge = errors.New("uploaded payload exceeds the configured size cap")
	ErrInference       = errors.New("classifier failed to produce a usable result")
)

// ValidationError is a client-input fault detected while vetting an upload.
// Reason is safe to show the caller verbatim; it never carries file paths,
// stack traces or upstream details.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
