package dto

import "time"

// VisibleOrder is the redacted projection of a pending order shown to a
// master who has not claimed it: public address subset only, no phone.
type VisibleOrder struct {
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	Street    string    `json:"street"`
	House     string    `json:"house"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderDetail is the full projection, available only to the assigned master
// (or an admin): complete address plus contact phone.
type OrderDetail struct {
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	MasterID  *uint     `json:"masterId,omitempty"`
	Street    string    `json:"street"`
	House     string    `json:"house"`
	Apartment *string   `json:"apartment,omitempty"`
	Entrance  *string   `json:"entrance,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	FinalCost *string   `json:"finalCost,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ClaimRequest struct {
	MasterID uint `json:"masterId"`
}

type ClaimResponse struct {
	TraceID   string    `json:"traceId"`
	OrderID   uint      `json:"orderId"`
	MasterID  uint      `json:"masterId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type StartRequest struct {
	MasterID uint `json:"masterId"`
}

type CompleteRequest struct {
	MasterID       uint              `json:"masterId"`
	Description    string            `json:"description"`
	Expenses       []CompletionSpend `json:"expenses"`
	ReceivedAmount string            `json:"receivedAmount"`
}

type CompletionSpend struct {
	Title  string `json:"title"`
	Amount string `json:"amount"`
}

type ApproveRequest struct {
	Actor string `json:"actor"`
}

type TransferRequest struct {
	MasterID uint   `json:"masterId"`
	Actor    string `json:"actor"`
}

type UnassignRequest struct {
	Actor string `json:"actor"`
}
