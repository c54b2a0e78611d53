package dto

import "time"

// ErrorResponse is the uniform error envelope returned by all controllers.
type ErrorResponse struct {
	TraceID       string        `json:"traceId"`
	Status        int           `json:"status"`
	Code          string        `json:"code"`
	Message       string        `json:"message"`
	CurrentStatus string        `json:"currentStatus,omitempty"`
	Details       []ErrorDetail `json:"details,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
