package api

import (
	"time"

	"github.com/gagnaveita/notkun/domain/entities"
)

// UsageRequest represents the request payload for a usage lookup
type UsageRequest struct {
	Kennitala string `json:"kennitala" validate:"required"`
}

// UsageResponse represents the response payload for a successful lookup
type UsageResponse struct {
	Kennitala    string               `json:"kennitala"`
	SwitchNumber string               `json:"switch_number"`
	PortNumber   string               `json:"port_number"`
	UsageData    entities.UsageResult `json:"usage_data"`
	Timestamp    time.Time            `json:"timestamp"`
}

// InfoResponse represents the service info payload
type InfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthResponse represents the liveness payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
