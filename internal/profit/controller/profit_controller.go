package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fieldops/internal/commons"
	"fieldops/internal/domain"
	"fieldops/internal/dto"
	apperrors "fieldops/internal/errors"
)

type DistributionService interface {
	Preview(ctx context.Context, orderID uint) (*domain.ProfitDistribution, error)
	SetMasterSettings(ctx context.Context, masterID uint, settings domain.ProfitSettings) error
	DeleteMasterSettings(ctx context.Context, masterID uint) error
}

type ApplyDistributionUseCase interface {
	Apply(ctx context.Context, orderID uint, actor string) (*domain.ProfitDistribution, error)
}

type BalanceAdjustmentUseCase interface {
	Adjust(ctx context.Context, masterID uint, delta decimal.Decimal, reason, actor string) (*domain.BalanceLogEntry, error)
}

type ProfitController struct {
	distribution DistributionService
	apply        ApplyDistributionUseCase
	adjustments  BalanceAdjustmentUseCase
	logger       *zap.Logger
}

func NewProfitController(
	distribution DistributionService,
	apply ApplyDistributionUseCase,
	adjustments BalanceAdjustmentUseCase,
	logger *zap.Logger,
) *ProfitController {
	return &ProfitController{
		distribution: distribution,
		apply:        apply,
		adjustments:  adjustments,
		logger:       logger,
	}
}

func (c *ProfitController) Preview(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := pathID(w, r, "orderId", traceID, logger)
	if !ok {
		return
	}

	distribution, err := c.distribution.Preview(r.Context(), orderID)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, toDistributionResponse(distribution))
}

// Approve handles the curator's completion approval: the order moves to
// COMPLETED and the profit split is applied.
func (c *ProfitController) Approve(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := pathID(w, r, "orderId", traceID, logger)
	if !ok {
		return
	}

	var req dto.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteError(w, logger, traceID, invalidBody())
		return
	}

	distribution, err := c.apply.Apply(r.Context(), orderID, req.Actor)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, toDistributionResponse(distribution))
}

func (c *ProfitController) SetMasterSettings(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := pathID(w, r, "masterId", traceID, logger)
	if !ok {
		return
	}

	var req dto.ProfitSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteError(w, logger, traceID, invalidBody())
		return
	}

	settings := domain.ProfitSettings{
		MasterPaid:    req.MasterPaid,
		MasterBalance: req.MasterBalance,
		Curator:       req.Curator,
		Company:       req.Company,
	}
	if err := c.distribution.SetMasterSettings(r.Context(), masterID, settings); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *ProfitController) DeleteMasterSettings(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := pathID(w, r, "masterId", traceID, logger)
	if !ok {
		return
	}

	if err := c.distribution.DeleteMasterSettings(r.Context(), masterID); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *ProfitController) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := pathID(w, r, "masterId", traceID, logger)
	if !ok {
		return
	}

	var req dto.BalanceAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteError(w, logger, traceID, invalidBody())
		return
	}

	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		commons.WriteError(w, logger, traceID, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "delta",
			Message: "delta must be a decimal number",
		}))
		return
	}

	entry, err := c.adjustments.Adjust(r.Context(), masterID, delta, req.Reason, req.Actor)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.BalanceAdjustmentResponse{
		MasterID:      masterID,
		Delta:         entry.Delta.StringFixed(2),
		BalanceBefore: entry.BalanceBefore.StringFixed(2),
		BalanceAfter:  entry.BalanceAfter.StringFixed(2),
	})
}

func toDistributionResponse(d *domain.ProfitDistribution) dto.ProfitDistributionResponse {
	return dto.ProfitDistributionResponse{
		OrderID:       d.OrderID,
		FinalCost:     d.FinalCost.StringFixed(2),
		MasterPaid:    d.MasterPaid.StringFixed(2),
		MasterBalance: d.MasterBalance.StringFixed(2),
		Curator:       d.Curator.StringFixed(2),
		Company:       d.Company.StringFixed(2),
		SettingsUsed: dto.ProfitSettingsUsed{
			SettingsID:    d.Settings.ID,
			Scope:         d.Settings.Scope(),
			MasterPaid:    d.Settings.MasterPaid,
			MasterBalance: d.Settings.MasterBalance,
			Curator:       d.Settings.Curator,
			Company:       d.Settings.Company,
		},
	}
}

func pathID(w http.ResponseWriter, r *http.Request, param, traceID string, logger *zap.Logger) (uint, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		logger.Warn("invalid id in path", zap.String("param", param), zap.String("value", raw))
		commons.WriteError(w, logger, traceID, apperrors.NewValidationError("invalid "+param, apperrors.ValidationDetail{
			Field:   param,
			Message: param + " must be a positive integer",
		}))
		return 0, false
	}
	return uint(id), true
}

func invalidBody() error {
	return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	})
}
