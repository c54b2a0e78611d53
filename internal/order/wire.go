package order

import (
	"database/sql"

	"go.uber.org/zap"

	"fieldops/internal/master"
	"fieldops/internal/order/controller"
	"fieldops/internal/order/repository"
	"fieldops/internal/order/service"
)

type Module struct {
	Controller  *controller.OrderController
	Orders      *repository.MySQLOrderRepository
	Completions *repository.MySQLCompletionRepository
}

func NewModule(db *sql.DB, masters *master.Module, logger *zap.Logger) *Module {
	orderRepo := repository.NewMySQLOrderRepository(db)
	completionRepo := repository.NewMySQLCompletionRepository(db)

	visibilitySvc := service.NewVisibilityService(orderRepo, masters.TierService, logger)
	assignmentSvc := service.NewAssignmentService(db, orderRepo, completionRepo, masters.Masters, logger)

	return &Module{
		Controller:  controller.NewOrderController(visibilitySvc, assignmentSvc, logger),
		Orders:      orderRepo,
		Completions: completionRepo,
	}
}
