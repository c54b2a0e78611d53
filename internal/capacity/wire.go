package capacity

import (
	"database/sql"

	"go.uber.org/zap"

	"fieldops/internal/capacity/controller"
	"fieldops/internal/capacity/repository"
	"fieldops/internal/capacity/service"
	"fieldops/internal/config"
	"fieldops/internal/master"
	"fieldops/internal/order"
)

type Module struct {
	Controller *controller.CapacityController
}

func NewModule(db *sql.DB, cfg *config.Config, masters *master.Module, orders *order.Module, logger *zap.Logger) *Module {
	availabilityRepo := repository.NewMySQLAvailabilityRepository(db)

	capacitySvc := service.NewCapacityService(
		masters.Masters,
		availabilityRepo,
		orders.Orders,
		cfg.Capacity.BusyPercentThreshold,
		logger,
	)

	return &Module{
		Controller: controller.NewCapacityController(capacitySvc, logger),
	}
}
