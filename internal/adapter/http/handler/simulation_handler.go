package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/planfolio/planfolio/internal/adapter/engine"
	"github.com/planfolio/planfolio/internal/adapter/http/dto"
	"github.com/planfolio/planfolio/internal/domain"
)

// SimulationService defines the behavior needed by SimulationHandler.
type SimulationService interface {
	Submit(ctx context.Context) (*domain.SimulationResult, error)
	Status() (submitting bool, result *domain.SimulationResult, err error)
	LastResult() (*domain.SimulationResult, error)
}

// SimulationHandler handles simulation submission HTTP requests.
type SimulationHandler struct {
	simUC SimulationService
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(simUC SimulationService) *SimulationHandler {
	return &SimulationHandler{simUC: simUC}
}

// Submit runs the current plan through the simulation engine. A submission
// already in flight answers 409, an engine failure answers 502.
func (h *SimulationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.simUC.Submit(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionInFlight) {
			writeError(w, http.StatusConflict, "submission already in flight", err.Error())
			return
		}

		var engineErr *engine.Error
		if errors.As(err, &engineErr) {
			writeError(w, http.StatusBadGateway, "simulation engine error", err.Error())
			return
		}

		writeError(w, http.StatusBadGateway, "simulation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ResultResponse{Result: result})
}

// Status reports whether a submission is in flight and the latest outcome.
func (h *SimulationHandler) Status(w http.ResponseWriter, r *http.Request) {
	submitting, result, err := h.simUC.Status()

	resp := dto.StatusResponse{
		Submitting: submitting,
		Result:     result,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

// Result returns the most recent simulation result.
func (h *SimulationHandler) Result(w http.ResponseWriter, r *http.Request) {
	result, err := h.simUC.LastResult()
	if err != nil {
		writeError(w, mapDomainError(err), "no simulation result", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ResultResponse{Result: result})
}
