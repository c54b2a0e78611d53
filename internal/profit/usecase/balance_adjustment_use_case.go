package usecase

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fieldops/internal/domain"
)

// BalanceAdjustmentUseCase applies a manual admin correction to a master's
// balance and records it in the ledger.
type BalanceAdjustmentUseCase struct {
	db         TransactionManager
	masters    MasterRepository
	balanceLog BalanceLogRepository
	logger     *zap.Logger
}

func NewBalanceAdjustmentUseCase(
	db TransactionManager,
	masters MasterRepository,
	balanceLog BalanceLogRepository,
	logger *zap.Logger,
) *BalanceAdjustmentUseCase {
	return &BalanceAdjustmentUseCase{
		db:         db,
		masters:    masters,
		balanceLog: balanceLog,
		logger:     logger,
	}
}

// Adjust applies delta to the master's balance. The row lock, the balance
// write and the ledger entry commit together.
func (uc *BalanceAdjustmentUseCase) Adjust(ctx context.Context, masterID uint, delta decimal.Decimal, reason, actor string) (*domain.BalanceLogEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := uc.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		uc.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	master, err := uc.masters.FindByIDForUpdate(txCtx, tx, masterID)
	if err != nil {
		return nil, err
	}

	newBalance := master.Balance.Add(delta)
	if err := uc.masters.UpdateBalance(txCtx, tx, masterID, newBalance); err != nil {
		return nil, err
	}

	entry := domain.BalanceLogEntry{
		MasterID:      masterID,
		Delta:         delta,
		BalanceBefore: master.Balance,
		BalanceAfter:  newBalance,
		Reason:        domain.BalanceReasonManualAdjustment,
		Actor:         actor,
	}
	if reason != "" {
		entry.Reason = reason
	}

	if _, err := uc.balanceLog.Insert(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		uc.logger.Error("failed to commit balance adjustment", zap.Uint("masterId", masterID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("balance adjusted",
		zap.Uint("masterId", masterID),
		zap.String("delta", delta.String()),
		zap.String("actor", actor),
	)

	return &entry, nil
}
