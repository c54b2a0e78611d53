package commons

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/dto"
	apperrors "fieldops/internal/errors"
)

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps the application error taxonomy to HTTP status codes and the
// uniform error envelope. Claim conflicts are an expected outcome, so they are
// logged at Warn, not Error.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		details := make([]dto.ErrorDetail, len(ve.Details))
		for i, d := range ve.Details {
			details[i] = dto.ErrorDetail{Field: d.Field, Message: d.Message}
		}
		writeEnvelope(w, logger, traceID, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, "", details)
		return
	}

	if nf, ok := apperrors.IsNotFoundError(err); ok {
		writeEnvelope(w, logger, traceID, http.StatusNotFound, "NOT_FOUND", nf.Message, "", nil)
		return
	}

	if sc, ok := apperrors.IsStateConflictError(err); ok {
		logger.Warn("state conflict", zap.String("currentStatus", sc.CurrentStatus), zap.String("message", sc.Message))
		writeEnvelope(w, logger, traceID, http.StatusConflict, "STATE_CONFLICT", sc.Message, sc.CurrentStatus, nil)
		return
	}

	if is, ok := apperrors.IsInvalidSettingsError(err); ok {
		writeEnvelope(w, logger, traceID, http.StatusConflict, "INVALID_SETTINGS", is.Error(), "", nil)
		return
	}

	if mc, ok := apperrors.IsMissingCostError(err); ok {
		writeEnvelope(w, logger, traceID, http.StatusUnprocessableEntity, "MISSING_COST", mc.Message, "", nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeEnvelope(w, logger, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", "", nil)
}

func writeEnvelope(w http.ResponseWriter, logger *zap.Logger, traceID string, status int, code, message, currentStatus string, details []dto.ErrorDetail) {
	WriteJSON(w, logger, status, dto.ErrorResponse{
		TraceID:       traceID,
		Status:        status,
		Code:          code,
		Message:       message,
		CurrentStatus: currentStatus,
		Details:       details,
		Timestamp:     time.Now().UTC(),
	})
}
