package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fieldops/internal/domain"
	apperrors "fieldops/internal/errors"
)

type mockMasterRepository struct {
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Master, error)
	SetTierModeFunc func(ctx context.Context, id uint, mode string, manualTier *int) error
}

func (m *mockMasterRepository) FindByID(ctx context.Context, id uint) (*domain.Master, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockMasterRepository) SetTierMode(ctx context.Context, id uint, mode string, manualTier *int) error {
	return m.SetTierModeFunc(ctx, id, mode, manualTier)
}

type mockStatisticsProvider struct {
	GetStatisticsFunc func(ctx context.Context, masterID uint, now time.Time) (domain.Statistics, error)
}

func (m *mockStatisticsProvider) GetStatistics(ctx context.Context, masterID uint, now time.Time) (domain.Statistics, error) {
	return m.GetStatisticsFunc(ctx, masterID, now)
}

func defaultThresholds() domain.TierThresholds {
	return domain.TierThresholds{
		AverageCheck: decimal.NewFromInt(65000),
		DailyRevenue: decimal.NewFromInt(350000),
		NetTurnover:  decimal.NewFromInt(1500000),
	}
}

func automaticMaster() *mockMasterRepository {
	return &mockMasterRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Master, error) {
			return &domain.Master{ID: id, TierMode: domain.TierModeAutomatic}, nil
		},
	}
}

func TestResolve_AutomaticFromStatistics(t *testing.T) {
	stats := &mockStatisticsProvider{
		GetStatisticsFunc: func(ctx context.Context, masterID uint, now time.Time) (domain.Statistics, error) {
			return domain.Statistics{
				AverageCheck:      decimal.NewFromInt(70000),
				DailyRevenue:      decimal.NewFromInt(100000),
				NetTurnover10Days: decimal.NewFromInt(800000),
			}, nil
		},
	}

	svc := NewTierService(automaticMaster(), stats, defaultThresholds(), zap.NewNop())

	resolution, err := svc.Resolve(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.TierExtended, resolution.Tier)
	assert.Equal(t, 28, resolution.VisibilityHours)
	assert.Equal(t, domain.TierModeAutomatic, resolution.Mode)
}

func TestResolve_ManualPinBypassesStatistics(t *testing.T) {
	pinned := 0
	masters := &mockMasterRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Master, error) {
			return &domain.Master{ID: id, TierMode: domain.TierModeManual, ManualTier: &pinned}, nil
		},
	}
	statsCalled := false
	stats := &mockStatisticsProvider{
		GetStatisticsFunc: func(ctx context.Context, masterID uint, now time.Time) (domain.Statistics, error) {
			statsCalled = true
			return domain.Statistics{DailyRevenue: decimal.NewFromInt(9999999)}, nil
		},
	}

	svc := NewTierService(masters, stats, defaultThresholds(), zap.NewNop())

	resolution, err := svc.Resolve(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.TierBase, resolution.Tier)
	assert.Equal(t, 24, resolution.VisibilityHours)
	assert.Equal(t, domain.TierModeManual, resolution.Mode)
	assert.False(t, statsCalled, "statistics must not be consulted while the tier is pinned")
}

func TestResolve_StatisticsFailureDegradesToBase(t *testing.T) {
	stats := &mockStatisticsProvider{
		GetStatisticsFunc: func(ctx context.Context, masterID uint, now time.Time) (domain.Statistics, error) {
			return domain.Statistics{}, errors.New("statistics backend down")
		},
	}

	svc := NewTierService(automaticMaster(), stats, defaultThresholds(), zap.NewNop())

	resolution, err := svc.Resolve(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.TierBase, resolution.Tier)
	assert.Equal(t, 24, resolution.VisibilityHours)
	assert.Equal(t, domain.TierModeAutomatic, resolution.Mode)
}

func TestResolve_MasterNotFound(t *testing.T) {
	masters := &mockMasterRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Master, error) {
			return nil, apperrors.NewNotFoundError("master with id 42 not found")
		},
	}

	svc := NewTierService(masters, &mockStatisticsProvider{}, defaultThresholds(), zap.NewNop())

	_, err := svc.Resolve(context.Background(), 42, time.Now())
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestSetManual_PersistsPin(t *testing.T) {
	var gotMode string
	var gotTier *int
	masters := &mockMasterRepository{
		SetTierModeFunc: func(ctx context.Context, id uint, mode string, manualTier *int) error {
			gotMode = mode
			gotTier = manualTier
			return nil
		},
	}

	svc := NewTierService(masters, &mockStatisticsProvider{}, defaultThresholds(), zap.NewNop())

	err := svc.SetManual(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.TierModeManual, gotMode)
	require.NotNil(t, gotTier)
	assert.Equal(t, 2, *gotTier)
}

func TestSetManual_InvalidTier(t *testing.T) {
	svc := NewTierService(&mockMasterRepository{}, &mockStatisticsProvider{}, defaultThresholds(), zap.NewNop())

	err := svc.SetManual(context.Background(), 1, 3)
	ve, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Len(t, ve.Details, 1)

	err = svc.SetManual(context.Background(), 1, -1)
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestResetToAutomatic_ClearsPin(t *testing.T) {
	var gotMode string
	var gotTier *int
	masters := &mockMasterRepository{
		SetTierModeFunc: func(ctx context.Context, id uint, mode string, manualTier *int) error {
			gotMode = mode
			gotTier = manualTier
			return nil
		},
	}

	svc := NewTierService(masters, &mockStatisticsProvider{}, defaultThresholds(), zap.NewNop())

	err := svc.ResetToAutomatic(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TierModeAutomatic, gotMode)
	assert.Nil(t, gotTier)
}
