package upload

import "errors"

var (
	ErrInvalidTarget = errors.New("invalid upload target")

	// Failure causes, reachable through Failure.Err with errors.Is.
	ErrTransport         = errors.New("transport error")
	ErrRejected          = errors.New("upload rejected")
	ErrMalformedResponse = errors.New("malformed response")
)
