package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceLogEntry is one row of the append-only balance ledger. Every profit
// application and manual adjustment records before/after values and the
// acting principal for audit and dispute resolution.
type BalanceLogEntry struct {
	ID            uint
	MasterID      uint
	OrderID       *uint
	Delta         decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Reason        string
	Actor         string
	CreatedAt     time.Time
}

const (
	BalanceReasonProfitShare      = "PROFIT_SHARE"
	BalanceReasonManualAdjustment = "MANUAL_ADJUSTMENT"
)
