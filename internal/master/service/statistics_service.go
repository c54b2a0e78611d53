package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fieldops/internal/domain"
)

// averageCheckWindow is the number of most recent completed orders averaged
// into a master's average check.
const averageCheckWindow = 10

// turnoverLookbackDays is the trailing window for net turnover.
const turnoverLookbackDays = 10

type MasterFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.Master, error)
}

type CompletedOrderRepository interface {
	LastCompletedCosts(ctx context.Context, masterID uint, limit int) ([]decimal.Decimal, error)
	CompletedSince(ctx context.Context, masterID uint, since time.Time) ([]domain.CompletedOrderRecord, error)
}

type StatisticsService struct {
	masters   MasterFinder
	completed CompletedOrderRepository
	logger    *zap.Logger
}

func NewStatisticsService(masters MasterFinder, completed CompletedOrderRepository, logger *zap.Logger) *StatisticsService {
	return &StatisticsService{
		masters:   masters,
		completed: completed,
		logger:    logger,
	}
}

// GetStatistics computes a master's rolling performance metrics as of now.
// A master with no completed orders gets all-zero statistics.
func (s *StatisticsService) GetStatistics(ctx context.Context, masterID uint, now time.Time) (domain.Statistics, error) {
	if _, err := s.masters.FindByID(ctx, masterID); err != nil {
		return domain.Statistics{}, err
	}

	costs, err := s.completed.LastCompletedCosts(ctx, masterID, averageCheckWindow)
	if err != nil {
		return domain.Statistics{}, err
	}

	since := now.AddDate(0, 0, -turnoverLookbackDays)
	records, err := s.completed.CompletedSince(ctx, masterID, since)
	if err != nil {
		return domain.Statistics{}, err
	}

	stats := domain.Statistics{
		AverageCheck:      averageCheck(costs),
		DailyRevenue:      dailyRevenue(records, now),
		NetTurnover10Days: netTurnover(records),
	}

	s.logger.Debug("statistics computed",
		zap.Uint("masterId", masterID),
		zap.String("averageCheck", stats.AverageCheck.String()),
		zap.String("dailyRevenue", stats.DailyRevenue.String()),
		zap.String("netTurnover10Days", stats.NetTurnover10Days.String()),
	)

	return stats, nil
}

func averageCheck(costs []decimal.Decimal) decimal.Decimal {
	if len(costs) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, cost := range costs {
		sum = sum.Add(cost)
	}
	return sum.Div(decimal.NewFromInt(int64(len(costs)))).RoundBank(2)
}

func dailyRevenue(records []domain.CompletedOrderRecord, now time.Time) decimal.Decimal {
	sum := decimal.Zero
	year, month, day := now.Date()
	for _, rec := range records {
		ry, rm, rd := rec.CompletedAt.In(now.Location()).Date()
		if ry == year && rm == month && rd == day {
			sum = sum.Add(rec.FinalCost)
		}
	}
	return sum
}

func netTurnover(records []domain.CompletedOrderRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, rec := range records {
		sum = sum.Add(rec.FinalCost.Sub(rec.Expenses))
	}
	return sum
}
