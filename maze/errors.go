package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when the requested grid size cannot hold
	// distinct, in-bound entrance and exit cells.
	ErrInvalidSize = errors.New("invalid grid size")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names.
	ErrUnknownStrategy = errors.New("unknown generation strategy")

	// ErrInvariantViolation signals a finished grid that is not a perfect maze.
	// It always indicates a defect in the generator, never bad input.
	ErrInvariantViolation = errors.New("maze invariant violated")
)

// SizeError reports a rejected grid size together with the accepted range.
type SizeError struct {
	Size int
	Min  int
	Max  int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("maze: invalid grid size %d: must be between %d and %d", e.Size, e.Min, e.Max)
}

// Unwrap lets errors.Is match ErrInvalidSize.
func (e *SizeError) Unwrap() error {
	return ErrInvalidSize
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("maze: %w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
