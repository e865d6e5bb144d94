package document

import (
	"errors"
	"fmt"
)

// Document errors.
var (
	// ErrNoFileName indicates a save was attempted before a file name was set.
	ErrNoFileName = errors.New("no file name")
)

// OperationError represents an I/O failure during open or save.
type OperationError struct {
	Op   string // "open" or "save"
	Path string // File the operation targeted
	Err  error  // Underlying error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for OperationError.
// Matches both the wrapper itself and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
