package repositories

import "errors"

// ErrNotFound is returned when an id matches no document.
var ErrNotFound = errors.New("repositories: document not found")
