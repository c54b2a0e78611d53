package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestStateConflictError_CarriesCurrentStatus(t *testing.T) {
	err := NewStateConflictError("order is already assigned", "ASSIGNED")

	assert.Equal(t, "ASSIGNED", err.CurrentStatus)
	assert.Contains(t, err.Error(), "order is already assigned")
	assert.Contains(t, err.Error(), "ASSIGNED")

	sc, ok := IsStateConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "ASSIGNED", sc.CurrentStatus)
}

func TestStateConflictError_WithoutStatus(t *testing.T) {
	err := NewStateConflictError("invalid transition", "")

	assert.Equal(t, "invalid transition", err.Error())
}

func TestMissingCostError(t *testing.T) {
	err := NewMissingCostError("order has no final cost")

	assert.Equal(t, "order has no final cost", err.Error())

	mc, ok := IsMissingCostError(err)
	assert.True(t, ok)
	assert.NotNil(t, mc)

	_, ok = IsMissingCostError(errors.New("other"))
	assert.False(t, ok)
}

func TestInvalidSettingsError_CarriesSum(t *testing.T) {
	err := NewInvalidSettingsError("profit percentages must sum to 100", 99)

	assert.Equal(t, 99, err.Sum)
	assert.Contains(t, err.Error(), "99")

	is, ok := IsInvalidSettingsError(err)
	assert.True(t, ok)
	assert.Equal(t, 99, is.Sum)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "masterId", Message: "masterId is required"},
		{Field: "tier", Message: "tier must be 0, 1 or 2"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "wrapper")
	assert.Contains(t, err.Error(), "underlying error")
}
