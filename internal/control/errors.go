package control

import (
	"errors"
	"fmt"
)

// Control errors.
var (
	// ErrUnsupportedMode is returned when auto mode is requested on a
	// parameter that has no auto variants.
	ErrUnsupportedMode = errors.New("auto mode not supported")

	// ErrInvalidVariant is returned for an auto variant index out of range.
	ErrInvalidVariant = errors.New("invalid auto variant")

	// ErrBoundsUnknown is returned when a range adjustment arrives before
	// the radar reported its supported range envelope.
	ErrBoundsUnknown = errors.New("range bounds unknown")

	// ErrInvalidBounds is returned for bounds that are inverted or that
	// overlap the auto sentinel range.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrUnknownKind is returned when a profile names a kind that does not exist.
	ErrUnknownKind = errors.New("unknown control kind")
)

type unknownKindError struct {
	key string
}

func (e *unknownKindError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownKind, e.key)
}

func (e *unknownKindError) Unwrap() error {
	return ErrUnknownKind
}
