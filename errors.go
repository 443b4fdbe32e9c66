package geogo

import (
	"errors"
)

var (
	// ErrNotFound is returned when an item is not found.
	ErrNotFound = errors.New("not found")

	// ErrNilPoint is returned when an insert or search is given a nil point.
	ErrNilPoint = errors.New("point must not be nil")
)
