package master

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fieldops/internal/config"
	"fieldops/internal/domain"
	"fieldops/internal/master/controller"
	"fieldops/internal/master/repository"
	"fieldops/internal/master/service"
)

type Module struct {
	Controller   *controller.MasterController
	TierService  *service.TierService
	StatsService *service.StatisticsService
	Masters      *repository.MySQLMasterRepository
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	masterRepo := repository.NewMySQLMasterRepository(db)
	statsRepo := repository.NewMySQLStatisticsRepository(db)

	statsSvc := service.NewStatisticsService(masterRepo, statsRepo, logger)

	thresholds := domain.TierThresholds{
		AverageCheck: decimal.NewFromInt(cfg.Tier.AverageCheckThreshold),
		DailyRevenue: decimal.NewFromInt(cfg.Tier.DailyRevenueThreshold),
		NetTurnover:  decimal.NewFromInt(cfg.Tier.NetTurnoverThreshold),
	}
	tierSvc := service.NewTierService(masterRepo, statsSvc, thresholds, logger)

	return &Module{
		Controller:   controller.NewMasterController(statsSvc, tierSvc, logger),
		TierService:  tierSvc,
		StatsService: statsSvc,
		Masters:      masterRepo,
	}
}
