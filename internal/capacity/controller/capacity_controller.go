package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fieldops/internal/commons"
	"fieldops/internal/dto"
	apperrors "fieldops/internal/errors"
)

type CapacityService interface {
	Analyze(ctx context.Context, date time.Time) (*dto.CapacityResponse, error)
}

type CapacityController struct {
	capacity CapacityService
	logger   *zap.Logger
}

func NewCapacityController(capacity CapacityService, logger *zap.Logger) *CapacityController {
	return &CapacityController{
		capacity: capacity,
		logger:   logger,
	}
}

// GetCapacityAnalysis handles GET /api/capacity?date=YYYY-MM-DD. Date
// defaults to today.
func (c *CapacityController) GetCapacityAnalysis(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			logger.Warn("invalid date parameter", zap.String("date", raw))
			commons.WriteError(w, logger, traceID, apperrors.NewValidationError("invalid date", apperrors.ValidationDetail{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}))
			return
		}
		date = parsed
	}

	analysis, err := c.capacity.Analyze(r.Context(), date)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, analysis)
}
