package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nf, ok := err.(*NotFoundError); ok {
		return nf, true
	}
	return nil, false
}

// StateConflictError reports a transition attempted from an invalid current
// state, e.g. claiming an order that is already assigned. CurrentStatus lets
// the caller refresh its view and explain the rejection.
type StateConflictError struct {
	Message       string
	CurrentStatus string
}

func (e *StateConflictError) Error() string {
	if e.CurrentStatus != "" {
		return fmt.Sprintf("%s (current status: %s)", e.Message, e.CurrentStatus)
	}
	return e.Message
}

func NewStateConflictError(message string, currentStatus string) *StateConflictError {
	return &StateConflictError{
		Message:       message,
		CurrentStatus: currentStatus,
	}
}

func IsStateConflictError(err error) (*StateConflictError, bool) {
	if sc, ok := err.(*StateConflictError); ok {
		return sc, true
	}
	return nil, false
}

// MissingCostError means a profit distribution was requested for an order
// that has not been priced yet.
type MissingCostError struct {
	Message string
}

func (e *MissingCostError) Error() string {
	return e.Message
}

func NewMissingCostError(message string) *MissingCostError {
	return &MissingCostError{Message: message}
}

func IsMissingCostError(err error) (*MissingCostError, bool) {
	if mc, ok := err.(*MissingCostError); ok {
		return mc, true
	}
	return nil, false
}

// InvalidSettingsError means profit settings percentages do not sum to
// exactly 100. Sum carries the observed total.
type InvalidSettingsError struct {
	Message string
	Sum     int
}

func (e *InvalidSettingsError) Error() string {
	return fmt.Sprintf("%s (sum: %d)", e.Message, e.Sum)
}

func NewInvalidSettingsError(message string, sum int) *InvalidSettingsError {
	return &InvalidSettingsError{
		Message: message,
		Sum:     sum,
	}
}

func IsInvalidSettingsError(err error) (*InvalidSettingsError, bool) {
	if is, ok := err.(*InvalidSettingsError); ok {
		return is, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
