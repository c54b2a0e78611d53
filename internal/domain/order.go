package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID         uint
	Status     string
	MasterID   *uint
	Street     string
	House      string
	Apartment  *string
	Entrance   *string
	Phone      *string
	FinalCost  *decimal.Decimal
	AssignedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	OrderStatusNew          = "NEW"
	OrderStatusInProcessing = "IN_PROCESSING"
	OrderStatusAssigned     = "ASSIGNED"
	OrderStatusInProgress   = "IN_PROGRESS"
	OrderStatusUnderReview  = "UNDER_REVIEW"
	OrderStatusCompleted    = "COMPLETED"
	OrderStatusTransferred  = "TRANSFERRED"
)

// HeldBy reports whether the order is currently assigned to the given master.
func (o Order) HeldBy(masterID uint) bool {
	return o.MasterID != nil && *o.MasterID == masterID
}

// Priced reports whether the order carries a positive final cost.
func (o Order) Priced() bool {
	return o.FinalCost != nil && o.FinalCost.IsPositive()
}

// Completion is the record a master submits when finishing an order. The
// received amount becomes the order's final cost once a curator approves.
type Completion struct {
	ID             uint
	OrderID        uint
	MasterID       uint
	Description    string
	ExpensesTotal  decimal.Decimal
	ReceivedAmount decimal.Decimal
	CreatedAt      time.Time
}
