package dto

import "time"

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type MessageResponse struct {
	TraceID string `json:"traceId,omitempty"`
	Message string `json:"message"`
}
