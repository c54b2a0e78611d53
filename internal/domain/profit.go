package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitSettings split an order's final cost into four buckets. MasterID nil
// marks the global fallback record; a non-nil MasterID marks an individual
// override. Percentages must sum to exactly 100.
type ProfitSettings struct {
	ID            uint
	MasterID      *uint
	MasterPaid    int
	MasterBalance int
	Curator       int
	Company       int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s ProfitSettings) PercentageSum() int {
	return s.MasterPaid + s.MasterBalance + s.Curator + s.Company
}

func (s ProfitSettings) IsIndividual() bool {
	return s.MasterID != nil
}

func (s ProfitSettings) Scope() string {
	if s.IsIndividual() {
		return ProfitScopeIndividual
	}
	return ProfitScopeGlobal
}

const (
	ProfitScopeGlobal     = "GLOBAL"
	ProfitScopeIndividual = "INDIVIDUAL"
)

// ProfitDistribution is the computed split for one order, together with the
// settings snapshot that produced it. The four amounts always sum to the
// order's final cost exactly.
type ProfitDistribution struct {
	OrderID       uint
	FinalCost     decimal.Decimal
	MasterPaid    decimal.Decimal
	MasterBalance decimal.Decimal
	Curator       decimal.Decimal
	Company       decimal.Decimal
	Settings      ProfitSettings
}
