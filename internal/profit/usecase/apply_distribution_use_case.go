package usecase

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fieldops/internal/domain"
	"fieldops/internal/errors"
	"fieldops/internal/infrastructure/metrics"
	"fieldops/internal/profit/service"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	CompleteWithCost(ctx context.Context, tx *sql.Tx, orderID uint, finalCost decimal.Decimal) error
}

type CompletionFinder interface {
	FindByOrderID(ctx context.Context, orderID uint) (*domain.Completion, error)
}

type SettingsResolver interface {
	ResolveForMaster(ctx context.Context, masterID uint) (*domain.ProfitSettings, error)
}

type MasterRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Master, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uint, balance decimal.Decimal) error
}

type BalanceLogRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, entry domain.BalanceLogEntry) (uint, error)
}

// ApplyDistributionUseCase approves an order under review. It fixes the
// final cost from the submitted completion, moves the order to COMPLETED,
// credits the master's balance share and appends the ledger entry, all in
// one transaction.
type ApplyDistributionUseCase struct {
	db          TransactionManager
	orders      OrderRepository
	completions CompletionFinder
	settings    SettingsResolver
	masters     MasterRepository
	balanceLog  BalanceLogRepository
	logger      *zap.Logger
}

func NewApplyDistributionUseCase(
	db TransactionManager,
	orders OrderRepository,
	completions CompletionFinder,
	settings SettingsResolver,
	masters MasterRepository,
	balanceLog BalanceLogRepository,
	logger *zap.Logger,
) *ApplyDistributionUseCase {
	return &ApplyDistributionUseCase{
		db:          db,
		orders:      orders,
		completions: completions,
		settings:    settings,
		masters:     masters,
		balanceLog:  balanceLog,
		logger:      logger,
	}
}

func (uc *ApplyDistributionUseCase) Apply(ctx context.Context, orderID uint, actor string) (*domain.ProfitDistribution, error) {
	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusUnderReview {
		return nil, errors.NewStateConflictError("order is not under review", order.Status)
	}
	if order.MasterID == nil {
		return nil, errors.NewStateConflictError("order has no assigned master", order.Status)
	}
	masterID := *order.MasterID

	completion, err := uc.completions.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if completion == nil || !completion.ReceivedAmount.IsPositive() {
		return nil, errors.NewMissingCostError("order has no final cost")
	}
	finalCost := completion.ReceivedAmount

	settings, err := uc.settings.ResolveForMaster(ctx, masterID)
	if err != nil {
		return nil, err
	}

	distribution, err := service.Split(orderID, finalCost, *settings)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := uc.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		uc.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := uc.orders.CompleteWithCost(txCtx, tx, orderID, finalCost); err != nil {
		return nil, err
	}

	master, err := uc.masters.FindByIDForUpdate(txCtx, tx, masterID)
	if err != nil {
		return nil, err
	}

	newBalance := master.Balance.Add(distribution.MasterBalance)
	if err := uc.masters.UpdateBalance(txCtx, tx, masterID, newBalance); err != nil {
		return nil, err
	}

	_, err = uc.balanceLog.Insert(txCtx, tx, domain.BalanceLogEntry{
		MasterID:      masterID,
		OrderID:       &orderID,
		Delta:         distribution.MasterBalance,
		BalanceBefore: master.Balance,
		BalanceAfter:  newBalance,
		Reason:        domain.BalanceReasonProfitShare,
		Actor:         actor,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		uc.logger.Error("failed to commit profit application", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	metrics.ProfitDistributionsTotal.Inc()
	uc.logger.Info("profit distribution applied",
		zap.Uint("orderId", orderID),
		zap.Uint("masterId", masterID),
		zap.String("finalCost", finalCost.String()),
		zap.String("masterBalanceShare", distribution.MasterBalance.String()),
		zap.String("actor", actor),
	)

	return distribution, nil
}
