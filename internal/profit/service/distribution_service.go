package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fieldops/internal/domain"
	"fieldops/internal/errors"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

type CompletionFinder interface {
	FindByOrderID(ctx context.Context, orderID uint) (*domain.Completion, error)
}

type SettingsRepository interface {
	ResolveForMaster(ctx context.Context, masterID uint) (*domain.ProfitSettings, error)
	FindGlobal(ctx context.Context) (*domain.ProfitSettings, error)
	UpsertForMaster(ctx context.Context, masterID uint, settings domain.ProfitSettings) error
	DeleteForMaster(ctx context.Context, masterID uint) error
}

type MasterFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.Master, error)
}

// DistributionService computes the four-way profit split for an order.
type DistributionService struct {
	orders      OrderRepository
	completions CompletionFinder
	settings    SettingsRepository
	masters     MasterFinder
	logger      *zap.Logger
}

func NewDistributionService(
	orders OrderRepository,
	completions CompletionFinder,
	settings SettingsRepository,
	masters MasterFinder,
	logger *zap.Logger,
) *DistributionService {
	return &DistributionService{
		orders:      orders,
		completions: completions,
		settings:    settings,
		masters:     masters,
		logger:      logger,
	}
}

var oneHundred = decimal.NewFromInt(100)

// Split applies the settings percentages to the final cost. Master, balance
// and curator shares are bankers-rounded to cents; the company share absorbs
// the residual so the four amounts always sum to the cost exactly. When the
// rounded shares overshoot the cost, the overshoot comes out of the largest
// share instead, so no bucket ever goes negative.
func Split(orderID uint, finalCost decimal.Decimal, settings domain.ProfitSettings) (*domain.ProfitDistribution, error) {
	if sum := settings.PercentageSum(); sum != 100 {
		return nil, errors.NewInvalidSettingsError("profit percentages must sum to 100", sum)
	}
	if !finalCost.IsPositive() {
		return nil, errors.NewMissingCostError("order has no final cost")
	}

	masterPaid := share(finalCost, settings.MasterPaid)
	masterBalance := share(finalCost, settings.MasterBalance)
	curator := share(finalCost, settings.Curator)
	company := finalCost.Sub(masterPaid).Sub(masterBalance).Sub(curator)

	if company.IsNegative() {
		switch {
		case masterPaid.GreaterThanOrEqual(masterBalance) && masterPaid.GreaterThanOrEqual(curator):
			masterPaid = masterPaid.Add(company)
		case masterBalance.GreaterThanOrEqual(curator):
			masterBalance = masterBalance.Add(company)
		default:
			curator = curator.Add(company)
		}
		company = decimal.Zero
	}

	return &domain.ProfitDistribution{
		OrderID:       orderID,
		FinalCost:     finalCost,
		MasterPaid:    masterPaid,
		MasterBalance: masterBalance,
		Curator:       curator,
		Company:       company,
		Settings:      settings,
	}, nil
}

func share(cost decimal.Decimal, percent int) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(int64(percent))).Div(oneHundred).RoundBank(2)
}

// Preview computes the distribution an approval would apply. For an order
// still under review the submitted received amount stands in for the final
// cost.
func (s *DistributionService) Preview(ctx context.Context, orderID uint) (*domain.ProfitDistribution, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.MasterID == nil {
		return nil, errors.NewStateConflictError("order has no assigned master", order.Status)
	}

	cost, err := s.resolveCost(ctx, order)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.ResolveForMaster(ctx, *order.MasterID)
	if err != nil {
		return nil, err
	}

	return Split(order.ID, cost, *settings)
}

func (s *DistributionService) resolveCost(ctx context.Context, order *domain.Order) (decimal.Decimal, error) {
	if order.Priced() {
		return *order.FinalCost, nil
	}

	completion, err := s.completions.FindByOrderID(ctx, order.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if completion == nil || !completion.ReceivedAmount.IsPositive() {
		return decimal.Zero, errors.NewMissingCostError("order has no final cost")
	}

	return completion.ReceivedAmount, nil
}

// SetMasterSettings validates and stores an individual settings record.
func (s *DistributionService) SetMasterSettings(ctx context.Context, masterID uint, settings domain.ProfitSettings) error {
	if _, err := s.masters.FindByID(ctx, masterID); err != nil {
		return err
	}

	for _, pct := range []int{settings.MasterPaid, settings.MasterBalance, settings.Curator, settings.Company} {
		if pct < 0 || pct > 100 {
			return errors.NewValidationError("invalid profit settings", errors.ValidationDetail{
				Field:   "percentages",
				Message: "each percentage must be between 0 and 100",
			})
		}
	}
	if sum := settings.PercentageSum(); sum != 100 {
		return errors.NewInvalidSettingsError("profit percentages must sum to 100", sum)
	}

	if err := s.settings.UpsertForMaster(ctx, masterID, settings); err != nil {
		return err
	}

	s.logger.Info("individual profit settings saved",
		zap.Uint("masterId", masterID),
		zap.Int("masterPaid", settings.MasterPaid),
		zap.Int("masterBalance", settings.MasterBalance),
		zap.Int("curator", settings.Curator),
		zap.Int("company", settings.Company),
	)
	return nil
}

// DeleteMasterSettings removes the individual record; the master falls back
// to the global settings.
func (s *DistributionService) DeleteMasterSettings(ctx context.Context, masterID uint) error {
	if err := s.settings.DeleteForMaster(ctx, masterID); err != nil {
		return err
	}

	s.logger.Info("individual profit settings removed", zap.Uint("masterId", masterID))
	return nil
}
