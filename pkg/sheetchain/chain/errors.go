package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrScopeNotFound indicates a reference naming a sheet that does not exist.
	ErrScopeNotFound = errors.New("scope not found")
	// ErrInvalidAddress indicates a reference that could not be resolved to data.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrNoPromptColumn indicates a header row without a prompt column.
	ErrNoPromptColumn = errors.New("no prompt column")
	// ErrEmptyChain indicates a table without any non-empty prompt.
	ErrEmptyChain = errors.New("empty chain")
	// ErrCancelled indicates a run that was cancelled before a step started.
	ErrCancelled = errors.New("cancelled")
)

// ReferenceError represents a data reference that could not be resolved.
type ReferenceError struct {
	// Kind is ErrScopeNotFound or ErrInvalidAddress.
	Kind error
	// Reference is the reference as written by the user.
	Reference string
	// Scope is the scope name, set for ErrScopeNotFound.
	Scope string
	Err   error
}

func (e *ReferenceError) Error() string {
	if e.Kind == ErrScopeNotFound {
		return fmt.Sprintf("reference %q: %v %q", e.Reference, e.Kind, e.Scope)
	}
	if e.Err != nil {
		return fmt.Sprintf("reference %q: %v: %v", e.Reference, e.Kind, e.Err)
	}
	return fmt.Sprintf("reference %q: %v", e.Reference, e.Kind)
}

func (e *ReferenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// RowError represents a chain row that could not be turned into a step.
type RowError struct {
	// Row is the 1-based sheet row.
	Row int
	// Column is the header of the offending column.
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// StepError represents a failure of one chain step. Step is 0-based; the
// message reports the 1-based step number.
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step+1, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
