package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Master struct {
	ID         uint
	Email      string
	Balance    decimal.Decimal
	TierMode   string
	ManualTier *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	TierModeAutomatic = "AUTOMATIC"
	TierModeManual    = "MANUAL"
)

// Statistics are a master's rolling performance metrics, computed from
// completed orders. All-zero when the master has no history.
type Statistics struct {
	AverageCheck      decimal.Decimal
	DailyRevenue      decimal.Decimal
	NetTurnover10Days decimal.Decimal
}

// TierThresholds hold the revenue cutoffs that promote a master to a wider
// order-visibility window.
type TierThresholds struct {
	AverageCheck decimal.Decimal
	DailyRevenue decimal.Decimal
	NetTurnover  decimal.Decimal
}

const (
	TierBase     = 0
	TierExtended = 1
	TierFullDay  = 2
)

// VisibilityHours maps a tier to its order-visibility window.
func VisibilityHours(tier int) int {
	switch tier {
	case TierFullDay:
		return 48
	case TierExtended:
		return 28
	default:
		return 24
	}
}

// ResolveTier classifies statistics into the highest tier whose condition
// holds. Tier conditions are independent: meeting the full-day condition
// wins regardless of the average-check condition.
func ResolveTier(stats Statistics, thresholds TierThresholds) int {
	if stats.DailyRevenue.GreaterThanOrEqual(thresholds.DailyRevenue) ||
		stats.NetTurnover10Days.GreaterThanOrEqual(thresholds.NetTurnover) {
		return TierFullDay
	}
	if stats.AverageCheck.GreaterThanOrEqual(thresholds.AverageCheck) {
		return TierExtended
	}
	return TierBase
}

// CompletedOrderRecord is the slice of a completed order that statistics are
// computed from.
type CompletedOrderRecord struct {
	FinalCost   decimal.Decimal
	Expenses    decimal.Decimal
	CompletedAt time.Time
}

// TierResolution is the outcome of resolving a master's distance tier,
// including which mode produced it.
type TierResolution struct {
	Tier            int
	VisibilityHours int
	Mode            string
}
