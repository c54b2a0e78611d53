package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fieldops/internal/commons"
	"fieldops/internal/domain"
	"fieldops/internal/dto"
	apperrors "fieldops/internal/errors"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, masterID uint, now time.Time) (domain.Statistics, error)
}

type TierService interface {
	Resolve(ctx context.Context, masterID uint, now time.Time) (domain.TierResolution, error)
	SetManual(ctx context.Context, masterID uint, tier int) error
	ResetToAutomatic(ctx context.Context, masterID uint) error
}

type MasterController struct {
	stats  StatisticsService
	tiers  TierService
	logger *zap.Logger
}

func NewMasterController(stats StatisticsService, tiers TierService, logger *zap.Logger) *MasterController {
	return &MasterController{
		stats:  stats,
		tiers:  tiers,
		logger: logger,
	}
}

func (c *MasterController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := c.masterIDFromPath(w, r, traceID, logger)
	if !ok {
		return
	}

	stats, err := c.stats.GetStatistics(r.Context(), masterID, time.Now())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.StatisticsResponse{
		MasterID:          masterID,
		AverageCheck:      stats.AverageCheck.StringFixed(2),
		DailyRevenue:      stats.DailyRevenue.StringFixed(2),
		NetTurnover10Days: stats.NetTurnover10Days.StringFixed(2),
	})
}

func (c *MasterController) GetDistanceTier(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := c.masterIDFromPath(w, r, traceID, logger)
	if !ok {
		return
	}

	resolution, err := c.tiers.Resolve(r.Context(), masterID, time.Now())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.TierResponse{
		MasterID:        masterID,
		Tier:            resolution.Tier,
		VisibilityHours: resolution.VisibilityHours,
		Mode:            resolution.Mode,
	})
}

func (c *MasterController) SetManualDistanceTier(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := c.masterIDFromPath(w, r, traceID, logger)
	if !ok {
		return
	}

	var req dto.SetTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteError(w, logger, traceID, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if err := c.tiers.SetManual(r.Context(), masterID, req.Tier); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	resolution, err := c.tiers.Resolve(r.Context(), masterID, time.Now())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.TierResponse{
		MasterID:        masterID,
		Tier:            resolution.Tier,
		VisibilityHours: resolution.VisibilityHours,
		Mode:            resolution.Mode,
	})
}

func (c *MasterController) ResetDistanceTier(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := c.masterIDFromPath(w, r, traceID, logger)
	if !ok {
		return
	}

	if err := c.tiers.ResetToAutomatic(r.Context(), masterID); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *MasterController) masterIDFromPath(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (uint, bool) {
	masterIDStr := chi.URLParam(r, "masterId")
	masterID, err := strconv.ParseUint(masterIDStr, 10, 64)
	if err != nil || masterID == 0 {
		logger.Warn("invalid masterId in path", zap.String("masterId", masterIDStr))
		commons.WriteError(w, logger, traceID, apperrors.NewValidationError("invalid masterId", apperrors.ValidationDetail{
			Field:   "masterId",
			Message: "masterId must be a positive integer",
		}))
		return 0, false
	}
	return uint(masterID), true
}
