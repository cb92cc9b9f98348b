package core

import "errors"

// ErrNotFound is returned when a referenced mission or agent does not exist.
var ErrNotFound = errors.New("dispatch: not found")

// ErrStoreUnavailable wraps read failures from the mission store. Single-entity
// calls propagate it; aggregate calls skip the failed record and continue.
var ErrStoreUnavailable = errors.New("dispatch: store unavailable")

// ErrInvalidInput is returned for malformed contexts or configuration, such
// as scoring weights that do not sum to one.
var ErrInvalidInput = errors.New("dispatch: invalid input")
