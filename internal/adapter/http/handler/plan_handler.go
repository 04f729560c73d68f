package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planfolio/planfolio/internal/adapter/http/dto"
	"github.com/planfolio/planfolio/internal/domain"
)

// PlannerService defines the behavior needed by PlanHandler.
type PlannerService interface {
	Snapshot() domain.SimulationInput
	SetParameters(fields ...domain.ParamField) domain.SimulationParameters
	AddHolding(kind domain.AccountKind) (domain.AccountHolding, error)
	UpdateHolding(kind domain.AccountKind, id string, fields ...domain.HoldingField) error
	RemoveHolding(kind domain.AccountKind, id string) error
	AddFlow(category domain.FlowCategory) (domain.RangeFlow, error)
	UpdateFlow(category domain.FlowCategory, id string, fields ...domain.FlowField) error
	RemoveFlow(category domain.FlowCategory, id string) error
	AddContribution(kind domain.AccountKind, holdingID string) (domain.RangeFlow, error)
	UpdateContribution(kind domain.AccountKind, holdingID, flowID string, fields ...domain.FlowField) error
	RemoveContribution(kind domain.AccountKind, holdingID, flowID string) error
}

// PlanHandler handles plan mutation HTTP requests.
type PlanHandler struct {
	plannerUC PlannerService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plannerUC PlannerService) *PlanHandler {
	return &PlanHandler{plannerUC: plannerUC}
}

// Get returns the current plan.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	snapshot := h.plannerUC.Snapshot()
	writeJSON(w, http.StatusOK, dto.PlanFromDomain(snapshot))
}

// UpdateParams applies a partial update to the simulation parameters.
func (h *PlanHandler) UpdateParams(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateParamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	params := h.plannerUC.SetParameters(req.Fields()...)
	writeJSON(w, http.StatusOK, dto.ParamsResponse{Params: params})
}

// AddHolding appends a defaulted holding to one account collection.
func (h *PlanHandler) AddHolding(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseAccountKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown account kind", err.Error())
		return
	}

	holding, err := h.plannerUC.AddHolding(kind)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add holding", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.HoldingResponse{Holding: holding})
}

// UpdateHolding applies a partial update to one holding.
func (h *PlanHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseAccountKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown account kind", err.Error())
		return
	}

	var req dto.UpdateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.plannerUC.UpdateHolding(kind, id, req.Fields()...); err != nil {
		writeError(w, mapDomainError(err), "failed to update holding", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveHolding deletes one holding from its collection.
func (h *PlanHandler) RemoveHolding(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseAccountKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown account kind", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.plannerUC.RemoveHolding(kind, id); err != nil {
		writeError(w, mapDomainError(err), "failed to remove holding", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// AddFlow appends a defaulted flow to the income or expense collection.
func (h *PlanHandler) AddFlow(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseFlowCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown flow category", err.Error())
		return
	}

	flow, err := h.plannerUC.AddFlow(category)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add flow", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.FlowResponse{Flow: flow})
}

// UpdateFlow applies a partial update to one flow.
func (h *PlanHandler) UpdateFlow(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseFlowCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown flow category", err.Error())
		return
	}

	var req dto.UpdateFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.plannerUC.UpdateFlow(category, id, req.Fields()...); err != nil {
		writeError(w, mapDomainError(err), "failed to update flow", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveFlow deletes one flow from its collection.
func (h *PlanHandler) RemoveFlow(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseFlowCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown flow category", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.plannerUC.RemoveFlow(category, id); err != nil {
		writeError(w, mapDomainError(err), "failed to remove flow", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// AddContribution appends a defaulted contribution to one holding.
func (h *PlanHandler) AddContribution(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseAccountKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown account kind", err.Error())
		return
	}

	holdingID := chi.URLParam(r, "id")
	flow, err := h.plannerUC.AddContribution(kind, holdingID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add contribution", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.FlowResponse{Flow: flow})
}

// UpdateContribution applies a partial update to one contribution.
func (h *PlanHandler) UpdateContribution(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseAccountKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown account kind", err.Error())
		return
	}

	var req dto.UpdateFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holdingID := chi.URLParam(r, "id")
	flowID := chi.URLParam(r, "flowID")
	if err := h.plannerUC.UpdateContribution(kind, holdingID, flowID, req.Fields()...); err != nil {
		writeError(w, mapDomainError(err), "failed to update contribution", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveContribution deletes one contribution from its holding.
func (h *PlanHandler) RemoveContribution(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseAccountKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, mapDomainError(err), "unknown account kind", err.Error())
		return
	}

	holdingID := chi.URLParam(r, "id")
	flowID := chi.URLParam(r, "flowID")
	if err := h.plannerUC.RemoveContribution(kind, holdingID, flowID); err != nil {
		writeError(w, mapDomainError(err), "failed to remove contribution", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
