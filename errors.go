package clickguard

import "errors"

var (
	// ErrInvalidArgument is returned for nil elements, nil listeners or
	// attempts to wrap a listener that is already guarded.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned when an element has no listener to guard,
	// when an element is not guarded, or when a guarded listener has nothing to unwrap into.
	ErrInvalidState = errors.New("invalid state")
)
