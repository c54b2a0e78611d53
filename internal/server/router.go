package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	capacityctrl "fieldops/internal/capacity/controller"
	"fieldops/internal/infrastructure/metrics"
	masterctrl "fieldops/internal/master/controller"
	orderctrl "fieldops/internal/order/controller"
	profitctrl "fieldops/internal/profit/controller"
)

func NewRouter(
	masters *masterctrl.MasterController,
	orders *orderctrl.OrderController,
	capacity *capacityctrl.CapacityController,
	profit *profitctrl.ProfitController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/masters/{masterId}", func(r chi.Router) {
			r.Get("/statistics", masters.GetStatistics)
			r.Get("/distance-tier", masters.GetDistanceTier)
			r.Put("/distance-tier", masters.SetManualDistanceTier)
			r.Delete("/distance-tier", masters.ResetDistanceTier)
			r.Get("/visible-orders", orders.ListVisibleOrders)
			r.Get("/orders/{orderId}", orders.GetOrder)
			r.Put("/profit-settings", profit.SetMasterSettings)
			r.Delete("/profit-settings", profit.DeleteMasterSettings)
			r.Post("/balance-adjustments", profit.AdjustBalance)
		})

		r.Route("/orders/{orderId}", func(r chi.Router) {
			r.Post("/claim", orders.Claim)
			r.Post("/start", orders.Start)
			r.Post("/complete", orders.Complete)
			r.Post("/approve", profit.Approve)
			r.Post("/transfer", orders.Transfer)
			r.Post("/unassign", orders.Unassign)
			r.Get("/profit/preview", profit.Preview)
		})

		r.Get("/capacity", capacity.GetCapacityAnalysis)
	})

	logger.Info("router configured")
	return r
}
