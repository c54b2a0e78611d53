package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/domain"
	"fieldops/internal/errors"
)

type MasterRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Master, error)
	SetTierMode(ctx context.Context, id uint, mode string, manualTier *int) error
}

type StatisticsProvider interface {
	GetStatistics(ctx context.Context, masterID uint, now time.Time) (domain.Statistics, error)
}

// TierService resolves a master's distance tier: either the admin-pinned
// manual tier, or the automatic classification of the master's statistics.
type TierService struct {
	masters    MasterRepository
	stats      StatisticsProvider
	thresholds domain.TierThresholds
	logger     *zap.Logger
}

func NewTierService(masters MasterRepository, stats StatisticsProvider, thresholds domain.TierThresholds, logger *zap.Logger) *TierService {
	return &TierService{
		masters:    masters,
		stats:      stats,
		thresholds: thresholds,
		logger:     logger,
	}
}

func (s *TierService) Resolve(ctx context.Context, masterID uint, now time.Time) (domain.TierResolution, error) {
	master, err := s.masters.FindByID(ctx, masterID)
	if err != nil {
		return domain.TierResolution{}, err
	}

	if master.TierMode == domain.TierModeManual && master.ManualTier != nil {
		tier := *master.ManualTier
		return domain.TierResolution{
			Tier:            tier,
			VisibilityHours: domain.VisibilityHours(tier),
			Mode:            domain.TierModeManual,
		}, nil
	}

	stats, err := s.stats.GetStatistics(ctx, masterID, now)
	if err != nil {
		// Visibility must always resolve to some window: degrade to the
		// base tier instead of failing the caller.
		s.logger.Warn("statistics unavailable, degrading to base tier",
			zap.Uint("masterId", masterID), zap.Error(err))
		return domain.TierResolution{
			Tier:            domain.TierBase,
			VisibilityHours: domain.VisibilityHours(domain.TierBase),
			Mode:            domain.TierModeAutomatic,
		}, nil
	}

	tier := domain.ResolveTier(stats, s.thresholds)
	return domain.TierResolution{
		Tier:            tier,
		VisibilityHours: domain.VisibilityHours(tier),
		Mode:            domain.TierModeAutomatic,
	}, nil
}

func (s *TierService) SetManual(ctx context.Context, masterID uint, tier int) error {
	if tier < domain.TierBase || tier > domain.TierFullDay {
		return errors.NewValidationError("invalid tier", errors.ValidationDetail{
			Field:   "tier",
			Message: "tier must be 0, 1 or 2",
		})
	}

	if err := s.masters.SetTierMode(ctx, masterID, domain.TierModeManual, &tier); err != nil {
		return err
	}

	s.logger.Info("distance tier pinned", zap.Uint("masterId", masterID), zap.Int("tier", tier))
	return nil
}

func (s *TierService) ResetToAutomatic(ctx context.Context, masterID uint) error {
	if err := s.masters.SetTierMode(ctx, masterID, domain.TierModeAutomatic, nil); err != nil {
		return err
	}

	s.logger.Info("distance tier reset to automatic", zap.Uint("masterId", masterID))
	return nil
}
