// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrCalibration      = errors.New("probability calibration failed")
	ErrLatticeShape     = errors.New("lattice shape violation")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
	ErrStoreUnavailable = errors.New("store not available")
)

// ValidationError represents an input precondition violation.
// It is raised before any lattice computation starts.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NumericalError represents a numerical failure during lattice
// construction or probability calibration. Layer and Offset identify
// the node where the failure occurred; both are -1 when the failure is
// not tied to a single node.
type NumericalError struct {
	Layer    int
	Offset   int
	Quantity string
	Value    float64
	Message  string
}

func (e *NumericalError) Error() string {
	if e.Layer < 0 {
		return fmt.Sprintf("numerical error: %s = %g: %s", e.Quantity, e.Value, e.Message)
	}
	return fmt.Sprintf("numerical error at node (%d,%d): %s = %g: %s", e.Layer, e.Offset, e.Quantity, e.Value, e.Message)
}

// NewNumericalError creates a new NumericalError tied to a lattice node.
func NewNumericalError(layer, offset int, quantity string, value float64, message string) *NumericalError {
	return &NumericalError{
		Layer:    layer,
		Offset:   offset,
		Quantity: quantity,
		Value:    value,
		Message:  message,
	}
}

// NewModelError creates a NumericalError that is not tied to a single node.
func NewModelError(quantity string, value float64, message string) *NumericalError {
	return &NumericalError{
		Layer:    -1,
		Offset:   -1,
		Quantity: quantity,
		Value:    value,
		Message:  message,
	}
}

// StoreError represents a persistence-related error.
type StoreError struct {
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s]: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
