package types

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidDirection = errors.New("invalid sort direction")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidStatus    = errors.New("invalid status")
)

// Index errors.
var ErrIndexOutOfRange = errors.New("index out of range")

// Import errors.
var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrNotAnArray        = errors.New("document is not an array")
	ErrUnreadableFile    = errors.New("import file unreadable")
)

// ValidationError reports which field failed validation and why.
// Err is one of the validation sentinels above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IndexError reports an index outside the backing sequence.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d: %v (have %d records)", e.Index, ErrIndexOutOfRange, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// ImportError reports why a snapshot was rejected. Reason is
// ErrMalformedDocument, ErrNotAnArray or ErrUnreadableFile; Cause is the
// underlying decoder or read error, if any.
type ImportError struct {
	Reason error
	Cause  error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import: %v: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("import: %v", e.Reason)
}

func (e *ImportError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Reason, e.Cause}
	}
	return []error{e.Reason}
}
