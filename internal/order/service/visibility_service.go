package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/domain"
	"fieldops/internal/dto"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	ListUnclaimedSince(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
}

type TierResolver interface {
	Resolve(ctx context.Context, masterID uint, now time.Time) (domain.TierResolution, error)
}

// VisibilityService selects which pending orders a master may see and
// projects them with the address redaction rules applied.
type VisibilityService struct {
	orders OrderRepository
	tiers  TierResolver
	logger *zap.Logger
}

func NewVisibilityService(orders OrderRepository, tiers TierResolver, logger *zap.Logger) *VisibilityService {
	return &VisibilityService{
		orders: orders,
		tiers:  tiers,
		logger: logger,
	}
}

// ListVisibleOrders returns the unclaimed pending orders created within the
// master's visibility window, boundary inclusive: an order created exactly
// visibilityHours ago is still visible. Only the public address subset is
// exposed.
func (s *VisibilityService) ListVisibleOrders(ctx context.Context, masterID uint, now time.Time) ([]dto.VisibleOrder, error) {
	resolution, err := s.tiers.Resolve(ctx, masterID, now)
	if err != nil {
		return nil, err
	}

	cutoff := now.Add(-time.Duration(resolution.VisibilityHours) * time.Hour)
	orders, err := s.orders.ListUnclaimedSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	visible := make([]dto.VisibleOrder, 0, len(orders))
	for _, order := range orders {
		visible = append(visible, dto.VisibleOrder{
			ID:        order.ID,
			Status:    order.Status,
			Street:    order.Street,
			House:     order.House,
			CreatedAt: order.CreatedAt,
		})
	}

	s.logger.Debug("visible orders listed",
		zap.Uint("masterId", masterID),
		zap.Int("tier", resolution.Tier),
		zap.Int("visibilityHours", resolution.VisibilityHours),
		zap.Int("count", len(visible)),
	)

	return visible, nil
}

// GetOrderView returns the order as seen by the given master: the full
// address and phone only when the master currently holds the order, the
// public subset otherwise.
func (s *VisibilityService) GetOrderView(ctx context.Context, masterID, orderID uint) (*dto.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	detail := &dto.OrderDetail{
		ID:        order.ID,
		Status:    order.Status,
		Street:    order.Street,
		House:     order.House,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}

	if order.HeldBy(masterID) {
		detail.MasterID = order.MasterID
		detail.Apartment = order.Apartment
		detail.Entrance = order.Entrance
		detail.Phone = order.Phone
		if order.FinalCost != nil {
			cost := order.FinalCost.StringFixed(2)
			detail.FinalCost = &cost
		}
	}

	return detail, nil
}
