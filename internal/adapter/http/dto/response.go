package dto

import (
	"github.com/planfolio/planfolio/internal/domain"
)

// PlanResponse represents the full plan in API responses. The domain input
// already carries the JSON shape clients expect, so it is embedded as-is.
type PlanResponse struct {
	Plan *domain.SimulationInput `json:"plan"`
}

// PlanFromDomain converts a plan snapshot to a response.
func PlanFromDomain(input domain.SimulationInput) *PlanResponse {
	return &PlanResponse{Plan: &input}
}

// HoldingResponse wraps a single holding in API responses.
type HoldingResponse struct {
	Holding domain.AccountHolding `json:"holding"`
}

// FlowResponse wraps a single flow in API responses.
type FlowResponse struct {
	Flow domain.RangeFlow `json:"flow"`
}

// ParamsResponse wraps the simulation parameters in API responses.
type ParamsResponse struct {
	Params domain.SimulationParameters `json:"params"`
}

// StatusResponse reports the submission state of the plan.
type StatusResponse struct {
	Submitting bool                     `json:"submitting"`
	Result     *domain.SimulationResult `json:"result,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// ResultResponse wraps a simulation result in API responses.
type ResultResponse struct {
	Result *domain.SimulationResult `json:"result"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
