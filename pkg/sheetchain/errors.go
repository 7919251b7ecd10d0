package sheetchain

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// PhaseError represents a failure in one phase of a run.
type PhaseError struct {
	SheetName string
	Phase     string // "read", "build", "execute", "write"
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s failed for sheet %q: %v", e.Phase, e.SheetName, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// NewPhaseError creates a new PhaseError.
func NewPhaseError(sheetName, phase string, err error) *PhaseError {
	return &PhaseError{
		SheetName: sheetName,
		Phase:     phase,
		Err:       err,
	}
}
