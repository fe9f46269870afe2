package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnly is returned when a read-only filter would be modified.
	ErrReadOnly = errors.New("filter is read-only")
	// ErrNotFound is returned for operations naming an unknown filter.
	ErrNotFound = errors.New("filter not found")
	// ErrNameConflict is returned when a filter name is already taken.
	ErrNameConflict = errors.New("filter name already in use")
	// ErrInvalidRule is returned for rules that cannot be constructed.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrMalformed is returned when persisted filter data has the wrong shape.
	ErrMalformed = errors.New("malformed filter definition")
)

// PatternError reports a match expression that does not compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid match pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
