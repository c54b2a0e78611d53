package profit

import (
	"database/sql"

	"go.uber.org/zap"

	"fieldops/internal/master"
	"fieldops/internal/order"
	"fieldops/internal/profit/controller"
	"fieldops/internal/profit/repository"
	"fieldops/internal/profit/service"
	"fieldops/internal/profit/usecase"
)

type Module struct {
	Controller *controller.ProfitController
}

func NewModule(db *sql.DB, masters *master.Module, orders *order.Module, logger *zap.Logger) *Module {
	settingsRepo := repository.NewMySQLSettingsRepository(db)
	balanceLogRepo := repository.NewMySQLBalanceLogRepository(db)

	distributionSvc := service.NewDistributionService(
		orders.Orders,
		orders.Completions,
		settingsRepo,
		masters.Masters,
		logger,
	)

	applyUC := usecase.NewApplyDistributionUseCase(
		db,
		orders.Orders,
		orders.Completions,
		settingsRepo,
		masters.Masters,
		balanceLogRepo,
		logger,
	)

	adjustUC := usecase.NewBalanceAdjustmentUseCase(db, masters.Masters, balanceLogRepo, logger)

	return &Module{
		Controller: controller.NewProfitController(distributionSvc, applyUC, adjustUC, logger),
	}
}
