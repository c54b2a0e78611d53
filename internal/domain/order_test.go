package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_HeldBy(t *testing.T) {
	masterID := uint(7)
	order := Order{
		ID:       1,
		Status:   OrderStatusAssigned,
		MasterID: &masterID,
	}

	assert.True(t, order.HeldBy(7))
	assert.False(t, order.HeldBy(8))
}

func TestOrder_HeldBy_Unassigned(t *testing.T) {
	order := Order{
		ID:     1,
		Status: OrderStatusInProcessing,
	}

	assert.False(t, order.HeldBy(7))
}

func TestOrder_Priced(t *testing.T) {
	cost := decimal.NewFromInt(100000)
	order := Order{FinalCost: &cost}
	assert.True(t, order.Priced())

	zero := decimal.Zero
	order = Order{FinalCost: &zero}
	assert.False(t, order.Priced())

	order = Order{}
	assert.False(t, order.Priced())
}

func TestOrder_StatusConstants(t *testing.T) {
	assert.Equal(t, "NEW", OrderStatusNew)
	assert.Equal(t, "IN_PROCESSING", OrderStatusInProcessing)
	assert.Equal(t, "ASSIGNED", OrderStatusAssigned)
	assert.Equal(t, "IN_PROGRESS", OrderStatusInProgress)
	assert.Equal(t, "UNDER_REVIEW", OrderStatusUnderReview)
	assert.Equal(t, "COMPLETED", OrderStatusCompleted)
	assert.Equal(t, "TRANSFERRED", OrderStatusTransferred)
}

func TestOrder_NullableFields(t *testing.T) {
	order := Order{
		ID:        1,
		Status:    OrderStatusNew,
		Street:    "Lenina",
		House:     "12",
		CreatedAt: time.Now(),
	}

	assert.Nil(t, order.MasterID)
	assert.Nil(t, order.Apartment)
	assert.Nil(t, order.Entrance)
	assert.Nil(t, order.Phone)
	assert.Nil(t, order.FinalCost)
	assert.Nil(t, order.AssignedAt)
}
