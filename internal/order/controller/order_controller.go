package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fieldops/internal/commons"
	"fieldops/internal/domain"
	"fieldops/internal/dto"
	apperrors "fieldops/internal/errors"
)

type VisibilityService interface {
	ListVisibleOrders(ctx context.Context, masterID uint, now time.Time) ([]dto.VisibleOrder, error)
	GetOrderView(ctx context.Context, masterID, orderID uint) (*dto.OrderDetail, error)
}

type AssignmentService interface {
	Claim(ctx context.Context, orderID, masterID uint) (*domain.Order, error)
	Start(ctx context.Context, orderID, masterID uint) error
	Complete(ctx context.Context, completion domain.Completion) error
	Transfer(ctx context.Context, orderID, newMasterID uint, actor string) error
	Unassign(ctx context.Context, orderID uint, actor string) error
}

type OrderController struct {
	visibility VisibilityService
	assignment AssignmentService
	logger     *zap.Logger
}

func NewOrderController(visibility VisibilityService, assignment AssignmentService, logger *zap.Logger) *OrderController {
	return &OrderController{
		visibility: visibility,
		assignment: assignment,
		logger:     logger,
	}
}

func (c *OrderController) ListVisibleOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := pathID(w, r, "masterId", traceID, logger)
	if !ok {
		return
	}

	orders, err := c.visibility.ListVisibleOrders(r.Context(), masterID, time.Now())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, orders)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	masterID, ok := pathID(w, r, "masterId", traceID, logger)
	if !ok {
		return
	}
	orderID, ok := pathID(w, r, "orderId", traceID, logger)
	if !ok {
		return
	}

	detail, err := c.visibility.GetOrderView(r.Context(), masterID, orderID)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, detail)
}

func (c *OrderController) Claim(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := pathID(w, r, "orderId", traceID, logger)
	if !ok {
		return
	}

	var req dto.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteError(w, logger, traceID, invalidBody())
		return
	}
	if req.MasterID == 0 {
		commons.WriteError(w, logger, traceID, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "masterId",
			Message: "masterId is required",
		}))
		return
	}

	order, err := c.assignment.Claim(r.Context(), orderID, req.MasterID)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.ClaimResponse{
		TraceID:   traceID,
		OrderID:   order.ID,
		MasterID:  req.MasterID,
		Status:    order.Status,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) Start(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := pathID(w, r, "orderId", traceID, logger)
	if !ok {
		return
	}

	var req dto.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteError(w, logger, traceID, invalidBody())
		return
	}

	if err := c.assignment.Start(r.Context(), orderID, req.MasterID); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) Complete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := pathID(w, r, "orderId", traceID, logger)
	if !ok {
		return
	}

	var req dto.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteError(w, logger, traceID, invalidBody())
		return
	}

	completion, err := c.buildCompletion(orderID, req)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	if err := c.assignment.Complete(r.Context(), *completion); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) buildCompletion(orderID uint, req dto.CompleteRequest) (*domain.Completion, error) {
	var details []apperrors.ValidationDetail

	if req.MasterID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "masterId",
			Message: "masterId is required",
		})
	}

	received, err := decimal.NewFromString(req.ReceivedAmount)
	if err != nil || received.IsNegative() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "receivedAmount",
			Message: "receivedAmount must be a non-negative decimal",
		})
	}

	expenses := decimal.Zero
	for idx, spend := range req.Expenses {
		amount, err := decimal.NewFromString(spend.Amount)
		if err != nil || amount.IsNegative() {
			details = append(details, apperrors.ValidationDetail{
				Field:   "expenses[" + strconv.Itoa(idx) + "].amount",
				Message: "amount must be a non-negative decimal",
			})
			continue
		}
		expenses = expenses.Add(amount)
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return &domain.Completion{
		OrderID:        orderID,
		MasterID:       req.MasterID,
		Description:    req.Description,
		ExpensesTotal:  expenses,
		ReceivedAmount: received,
	}, nil
}

func (c *OrderController) Transfer(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := pathID(w, r, "orderId", traceID, logger)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteError(w, logger, traceID, invalidBody())
		return
	}
	if req.MasterID == 0 {
		commons.WriteError(w, logger, traceID, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "masterId",
			Message: "masterId is required",
		}))
		return
	}

	if err := c.assignment.Transfer(r.Context(), orderID, req.MasterID, req.Actor); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) Unassign(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := pathID(w, r, "orderId", traceID, logger)
	if !ok {
		return
	}

	var req dto.UnassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteError(w, logger, traceID, invalidBody())
		return
	}

	if err := c.assignment.Unassign(r.Context(), orderID, req.Actor); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
