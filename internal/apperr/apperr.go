package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a concurrent modification lost a compare-and-set.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition indicates an operation attempted from an alert
// status that does not permit it.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnavailable indicates that no eligible party remains for the
// requested operation (e.g. a driver already taken).
var ErrUnavailable = errors.New("unavailable")

// ErrUnresolved indicates that an address could not be geocoded.
// It is recoverable: callers fall back to unranked selection.
var ErrUnresolved = errors.New("address unresolved")
