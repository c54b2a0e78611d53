package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fieldops/internal/domain"
	apperrors "fieldops/internal/errors"
	"fieldops/internal/infrastructure/metrics"
)

type mockAssignmentOrderRepository struct {
	FindByIDFunc            func(ctx context.Context, id uint) (*domain.Order, error)
	ClaimFunc               func(ctx context.Context, orderID, masterID uint) error
	TransitionForHolderFunc func(ctx context.Context, orderID, masterID uint, from, to string) error
	SubmitForReviewFunc     func(ctx context.Context, tx *sql.Tx, orderID, masterID uint) error
	TransferFunc            func(ctx context.Context, orderID, newMasterID uint) error
	UnassignFunc            func(ctx context.Context, orderID uint) error
}

func (m *mockAssignmentOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockAssignmentOrderRepository) Claim(ctx context.Context, orderID, masterID uint) error {
	return m.ClaimFunc(ctx, orderID, masterID)
}

func (m *mockAssignmentOrderRepository) TransitionForHolder(ctx context.Context, orderID, masterID uint, from, to string) error {
	return m.TransitionForHolderFunc(ctx, orderID, masterID, from, to)
}

func (m *mockAssignmentOrderRepository) SubmitForReview(ctx context.Context, tx *sql.Tx, orderID, masterID uint) error {
	return m.SubmitForReviewFunc(ctx, tx, orderID, masterID)
}

func (m *mockAssignmentOrderRepository) Transfer(ctx context.Context, orderID, newMasterID uint) error {
	return m.TransferFunc(ctx, orderID, newMasterID)
}

func (m *mockAssignmentOrderRepository) Unassign(ctx context.Context, orderID uint) error {
	return m.UnassignFunc(ctx, orderID)
}

type mockCompletionRepository struct {
	InsertFunc func(ctx context.Context, tx *sql.Tx, completion domain.Completion) (uint, error)
}

func (m *mockCompletionRepository) Insert(ctx context.Context, tx *sql.Tx, completion domain.Completion) (uint, error) {
	return m.InsertFunc(ctx, tx, completion)
}

type mockMasterFinder struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Master, error)
}

func (m *mockMasterFinder) FindByID(ctx context.Context, id uint) (*domain.Master, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockTransactionManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

func knownMaster() *mockMasterFinder {
	return &mockMasterFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Master, error) {
			return &domain.Master{ID: id}, nil
		},
	}
}

func TestClaim_Success(t *testing.T) {
	masterID := uint(3)
	orders := &mockAssignmentOrderRepository{
		ClaimFunc: func(ctx context.Context, orderID, mID uint) error {
			assert.Equal(t, uint(10), orderID)
			assert.Equal(t, masterID, mID)
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusAssigned, MasterID: &masterID}, nil
		},
	}

	svc := NewAssignmentService(nil, orders, nil, knownMaster(), zap.NewNop())

	order, err := svc.Claim(context.Background(), 10, masterID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAssigned, order.Status)
	require.NotNil(t, order.MasterID)
	assert.Equal(t, masterID, *order.MasterID)
}

func TestClaim_ConflictCounterTracksOnlyStateConflicts(t *testing.T) {
	conflictOrders := &mockAssignmentOrderRepository{
		ClaimFunc: func(ctx context.Context, orderID, masterID uint) error {
			return apperrors.NewStateConflictError("order is already assigned", domain.OrderStatusAssigned)
		},
	}
	missingOrders := &mockAssignmentOrderRepository{
		ClaimFunc: func(ctx context.Context, orderID, masterID uint) error {
			return apperrors.NewNotFoundError("order with id 10 not found")
		},
	}

	svc := NewAssignmentService(nil, conflictOrders, nil, knownMaster(), zap.NewNop())

	before := promtestutil.ToFloat64(metrics.OrderClaimConflictsTotal)
	_, err := svc.Claim(context.Background(), 10, 3)
	require.Error(t, err)
	assert.Equal(t, before+1, promtestutil.ToFloat64(metrics.OrderClaimConflictsTotal))

	svc = NewAssignmentService(nil, missingOrders, nil, knownMaster(), zap.NewNop())

	before = promtestutil.ToFloat64(metrics.OrderClaimConflictsTotal)
	_, err = svc.Claim(context.Background(), 10, 3)
	require.Error(t, err)
	assert.Equal(t, before, promtestutil.ToFloat64(metrics.OrderClaimConflictsTotal),
		"a missing order is not a claim conflict")
}

func TestClaim_LoserGetsStateConflict(t *testing.T) {
	orders := &mockAssignmentOrderRepository{
		ClaimFunc: func(ctx context.Context, orderID, masterID uint) error {
			return apperrors.NewStateConflictError("order is already assigned", domain.OrderStatusAssigned)
		},
	}

	svc := NewAssignmentService(nil, orders, nil, knownMaster(), zap.NewNop())

	_, err := svc.Claim(context.Background(), 10, 3)
	sc, ok := apperrors.IsStateConflictError(err)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusAssigned, sc.CurrentStatus)
}

func TestClaim_UnknownMaster(t *testing.T) {
	masters := &mockMasterFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Master, error) {
			return nil, apperrors.NewNotFoundError("master with id 99 not found")
		},
	}
	orders := &mockAssignmentOrderRepository{
		ClaimFunc: func(ctx context.Context, orderID, masterID uint) error {
			t.Fatal("claim must not reach the repository for an unknown master")
			return nil
		},
	}

	svc := NewAssignmentService(nil, orders, nil, masters, zap.NewNop())

	_, err := svc.Claim(context.Background(), 10, 99)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestStart_DelegatesHolderTransition(t *testing.T) {
	var gotFrom, gotTo string
	orders := &mockAssignmentOrderRepository{
		TransitionForHolderFunc: func(ctx context.Context, orderID, masterID uint, from, to string) error {
			gotFrom = from
			gotTo = to
			return nil
		},
	}

	svc := NewAssignmentService(nil, orders, nil, knownMaster(), zap.NewNop())

	err := svc.Start(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAssigned, gotFrom)
	assert.Equal(t, domain.OrderStatusInProgress, gotTo)
}

func TestStart_NonHolderConflictPropagates(t *testing.T) {
	orders := &mockAssignmentOrderRepository{
		TransitionForHolderFunc: func(ctx context.Context, orderID, masterID uint, from, to string) error {
			return apperrors.NewStateConflictError("order is not held by this master", domain.OrderStatusAssigned)
		},
	}

	svc := NewAssignmentService(nil, orders, nil, knownMaster(), zap.NewNop())

	err := svc.Start(context.Background(), 10, 4)
	_, ok := apperrors.IsStateConflictError(err)
	assert.True(t, ok)
}

func TestComplete_BeginTxFailure(t *testing.T) {
	db := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			assert.Equal(t, sql.LevelRepeatableRead, opts.Isolation)
			return nil, errors.New("connection refused")
		},
	}

	svc := NewAssignmentService(db, &mockAssignmentOrderRepository{}, &mockCompletionRepository{}, knownMaster(), zap.NewNop())

	err := svc.Complete(context.Background(), domain.Completion{OrderID: 10, MasterID: 3})
	assert.Error(t, err)
}

func TestTransfer_UnknownTargetMaster(t *testing.T) {
	masters := &mockMasterFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Master, error) {
			return nil, apperrors.NewNotFoundError("master with id 99 not found")
		},
	}

	svc := NewAssignmentService(nil, &mockAssignmentOrderRepository{}, nil, masters, zap.NewNop())

	err := svc.Transfer(context.Background(), 10, 99, "operator")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestUnassign_Delegates(t *testing.T) {
	var gotOrderID uint
	orders := &mockAssignmentOrderRepository{
		UnassignFunc: func(ctx context.Context, orderID uint) error {
			gotOrderID = orderID
			return nil
		},
	}

	svc := NewAssignmentService(nil, orders, nil, knownMaster(), zap.NewNop())

	err := svc.Unassign(context.Background(), 10, "operator")
	require.NoError(t, err)
	assert.Equal(t, uint(10), gotOrderID)
}
