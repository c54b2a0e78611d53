package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/domain"
	"fieldops/internal/dto"
)

type MasterRepository interface {
	FindAll(ctx context.Context) ([]domain.Master, error)
}

type AvailabilityRepository interface {
	SlotCountsForDate(ctx context.Context, date time.Time) (map[uint]int, error)
	AssignedCountsForDate(ctx context.Context, date time.Time) (map[uint]int, error)
}

type PendingOrderCounter interface {
	CountPendingByStatus(ctx context.Context) (map[string]int, error)
}

// CapacityService aggregates schedule slots against assigned orders to
// produce per-master workload, system-wide totals and dispatch
// recommendations.
type CapacityService struct {
	masters      MasterRepository
	availability AvailabilityRepository
	pending      PendingOrderCounter
	busyPercent  float64
	logger       *zap.Logger
}

func NewCapacityService(
	masters MasterRepository,
	availability AvailabilityRepository,
	pending PendingOrderCounter,
	busyPercent float64,
	logger *zap.Logger,
) *CapacityService {
	return &CapacityService{
		masters:      masters,
		availability: availability,
		pending:      pending,
		busyPercent:  busyPercent,
		logger:       logger,
	}
}

func (s *CapacityService) Analyze(ctx context.Context, date time.Time) (*dto.CapacityResponse, error) {
	masters, err := s.masters.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	slotCounts, err := s.availability.SlotCountsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	assignedCounts, err := s.availability.AssignedCountsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	pendingCounts, err := s.pending.CountPendingByStatus(ctx)
	if err != nil {
		return nil, err
	}

	perMaster := make([]dto.MasterCapacity, 0, len(masters))
	system := dto.SystemCapacity{
		TotalMasters:        len(masters),
		PendingNew:          pendingCounts[domain.OrderStatusNew],
		PendingInProcessing: pendingCounts[domain.OrderStatusInProcessing],
	}
	system.PendingTotal = system.PendingNew + system.PendingInProcessing

	for _, m := range masters {
		slots := slotCounts[m.ID]
		assigned := assignedCounts[m.ID]
		mc := dto.MasterCapacity{
			MasterID:       m.ID,
			Email:          m.Email,
			AvailableSlots: slots,
			AssignedOrders: assigned,
		}

		// A master with no slots has no schedule, not a zero-capacity
		// division problem.
		if slots == 0 {
			mc.CapacityPercent = 0
			mc.Status = dto.CapacityStatusNoSchedule
			system.MastersWithoutSchedule++
		} else {
			mc.CapacityPercent = float64(assigned) / float64(slots) * 100
			if mc.CapacityPercent < s.busyPercent {
				mc.Status = dto.CapacityStatusFree
				system.MastersFree++
			} else {
				mc.Status = dto.CapacityStatusBusy
				system.MastersBusy++
			}
			system.MastersWithSchedule++
			system.TotalSlots += slots
			free := slots - assigned
			if free < 0 {
				free = 0
			}
			system.AvailableSlots += free
		}

		perMaster = append(perMaster, mc)
	}
	system.OccupiedSlots = system.TotalSlots - system.AvailableSlots

	response := &dto.CapacityResponse{
		Date:            date.Format("2006-01-02"),
		Masters:         perMaster,
		System:          system,
		Recommendations: recommendations(system),
	}

	s.logger.Debug("capacity analyzed",
		zap.String("date", response.Date),
		zap.Int("totalMasters", system.TotalMasters),
		zap.Int("pendingTotal", system.PendingTotal),
		zap.Int("recommendations", len(response.Recommendations)),
	)

	return response, nil
}

// recommendations is a pure rule list over the aggregated numbers; nothing
// here is persisted.
func recommendations(system dto.SystemCapacity) []dto.Recommendation {
	recs := []dto.Recommendation{}

	if system.PendingTotal > system.AvailableSlots {
		recs = append(recs, dto.Recommendation{
			Type: dto.RecommendationAddCapacity,
			Message: fmt.Sprintf("%d pending orders exceed %d available slots",
				system.PendingTotal, system.AvailableSlots),
			SuggestedAction: "add availability slots or bring more masters online",
		})
	}

	if system.MastersWithoutSchedule > 0 {
		recs = append(recs, dto.Recommendation{
			Type: dto.RecommendationFillSchedule,
			Message: fmt.Sprintf("%d masters have no schedule for this date",
				system.MastersWithoutSchedule),
			SuggestedAction: "ask masters to publish availability slots",
		})
	}

	if system.PendingTotal > 0 && system.MastersWithSchedule > 0 && system.MastersFree == 0 {
		recs = append(recs, dto.Recommendation{
			Type:            dto.RecommendationExtendVisibility,
			Message:         "all scheduled masters are at or above the busy threshold",
			SuggestedAction: "extend visibility tiers so pending orders reach more masters",
		})
	}

	return recs
}
