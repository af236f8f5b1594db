package errors

import "errors"

var (
	ErrInvalidLogEntry = errors.New("invalid activity log entry")
	ErrInvalidQuery    = errors.New("invalid activity log query")
)
