package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/domain"
	"fieldops/internal/errors"
	"fieldops/internal/infrastructure/metrics"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type AssignmentOrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	Claim(ctx context.Context, orderID, masterID uint) error
	TransitionForHolder(ctx context.Context, orderID, masterID uint, from, to string) error
	SubmitForReview(ctx context.Context, tx *sql.Tx, orderID, masterID uint) error
	Transfer(ctx context.Context, orderID, newMasterID uint) error
	Unassign(ctx context.Context, orderID uint) error
}

type CompletionRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, completion domain.Completion) (uint, error)
}

type MasterFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.Master, error)
}

// AssignmentService is the state-transition gate for order ownership. A
// losing concurrent claim is a normal outcome here, surfaced as a
// StateConflictError, never a silent overwrite.
type AssignmentService struct {
	db          TransactionManager
	orders      AssignmentOrderRepository
	completions CompletionRepository
	masters     MasterFinder
	logger      *zap.Logger
}

func NewAssignmentService(
	db TransactionManager,
	orders AssignmentOrderRepository,
	completions CompletionRepository,
	masters MasterFinder,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		db:          db,
		orders:      orders,
		completions: completions,
		masters:     masters,
		logger:      logger,
	}
}

// Claim transitions an order from IN_PROCESSING to ASSIGNED for the given
// master. Exactly one concurrent claimant succeeds.
func (s *AssignmentService) Claim(ctx context.Context, orderID, masterID uint) (*domain.Order, error) {
	start := time.Now()
	defer func() {
		metrics.ClaimDuration.Observe(time.Since(start).Seconds())
	}()

	if _, err := s.masters.FindByID(ctx, masterID); err != nil {
		return nil, err
	}

	if err := s.orders.Claim(ctx, orderID, masterID); err != nil {
		if _, ok := errors.IsStateConflictError(err); ok {
			metrics.OrderClaimConflictsTotal.Inc()
		}
		s.logger.Warn("claim rejected", zap.Uint("orderId", orderID), zap.Uint("masterId", masterID), zap.Error(err))
		return nil, err
	}

	metrics.OrderClaimsTotal.Inc()
	s.logger.Info("order claimed", zap.Uint("orderId", orderID), zap.Uint("masterId", masterID))

	return s.orders.FindByID(ctx, orderID)
}

// Start moves a claimed order to IN_PROGRESS for its holder.
func (s *AssignmentService) Start(ctx context.Context, orderID, masterID uint) error {
	err := s.orders.TransitionForHolder(ctx, orderID, masterID, domain.OrderStatusAssigned, domain.OrderStatusInProgress)
	if err != nil {
		return err
	}

	s.logger.Info("order started", zap.Uint("orderId", orderID), zap.Uint("masterId", masterID))
	return nil
}

// Complete records the master's completion report and moves the order to
// UNDER_REVIEW. The status transition and the completion insert commit
// together.
func (s *AssignmentService) Complete(ctx context.Context, completion domain.Completion) error {
	txCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.orders.SubmitForReview(txCtx, tx, completion.OrderID, completion.MasterID); err != nil {
		return err
	}

	if _, err := s.completions.Insert(txCtx, tx, completion); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit completion", zap.Uint("orderId", completion.OrderID), zap.Error(err))
		return err
	}

	s.logger.Info("order submitted for review",
		zap.Uint("orderId", completion.OrderID),
		zap.Uint("masterId", completion.MasterID),
		zap.String("receivedAmount", completion.ReceivedAmount.String()),
	)
	return nil
}

// Transfer reassigns an active order to a different master, e.g. for
// warranty work.
func (s *AssignmentService) Transfer(ctx context.Context, orderID, newMasterID uint, actor string) error {
	if _, err := s.masters.FindByID(ctx, newMasterID); err != nil {
		return err
	}

	if err := s.orders.Transfer(ctx, orderID, newMasterID); err != nil {
		return err
	}

	s.logger.Info("order transferred",
		zap.Uint("orderId", orderID),
		zap.Uint("newMasterId", newMasterID),
		zap.String("actor", actor),
	)
	return nil
}

// Unassign clears the holder and returns the order to the dispatch pool.
func (s *AssignmentService) Unassign(ctx context.Context, orderID uint, actor string) error {
	if err := s.orders.Unassign(ctx, orderID); err != nil {
		return err
	}

	s.logger.Info("order unassigned", zap.Uint("orderId", orderID), zap.String("actor", actor))
	return nil
}
