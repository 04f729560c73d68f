package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/planfolio/planfolio/internal/domain"
	"github.com/planfolio/planfolio/internal/infrastructure/metrics"
)

// PlannerUseCase owns the single live plan plus the transient submission
// state. Mutations are serialized by a mutex and each one leaves the plan in
// a fully consistent state; readers only ever see deep copies, so an
// in-flight snapshot can never observe a half-applied edit.
type PlannerUseCase struct {
	mu         sync.RWMutex
	input      domain.SimulationInput
	lastResult *domain.SimulationResult
	lastErr    error

	// submitting is the single-flight guard for Submit.
	submitting atomic.Bool

	idGen    IDGenerator
	engine   EngineClient
	cache    ResultCache
	cacheTTL time.Duration
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// PlannerConfig holds dependencies for the planner. Cache and Metrics are
// optional.
type PlannerConfig struct {
	IDGen    IDGenerator
	Engine   EngineClient
	Cache    ResultCache
	CacheTTL time.Duration
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
}

// NewPlannerUseCase creates a planner holding an empty default plan.
func NewPlannerUseCase(cfg PlannerConfig) *PlannerUseCase {
	return &PlannerUseCase{
		input:    domain.NewSimulationInput(),
		idGen:    cfg.IDGen,
		engine:   cfg.Engine,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// Snapshot returns a deep copy of the current plan.
func (uc *PlannerUseCase) Snapshot() domain.SimulationInput {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.input.Clone()
}

// SetParameters applies parameter updates.
func (uc *PlannerUseCase) SetParameters(fields ...domain.ParamField) domain.SimulationParameters {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.input.SetParameters(fields...)
	uc.metrics.RecordMutation("set_params", "simulationParams")
	return uc.input.Params
}

// AddHolding appends a freshly defaulted holding and returns it.
func (uc *PlannerUseCase) AddHolding(kind domain.AccountKind) (domain.AccountHolding, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	h, err := uc.input.AddHolding(kind, uc.idGen.Generate())
	if err != nil {
		return domain.AccountHolding{}, err
	}
	uc.metrics.RecordMutation("add", string(kind))
	return h, nil
}

// UpdateHolding applies field updates to one holding.
func (uc *PlannerUseCase) UpdateHolding(kind domain.AccountKind, id string, fields ...domain.HoldingField) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.input.UpdateHolding(kind, id, fields...); err != nil {
		return err
	}
	uc.metrics.RecordMutation("update", string(kind))
	return nil
}

// RemoveHolding deletes one holding together with its contributions.
func (uc *PlannerUseCase) RemoveHolding(kind domain.AccountKind, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.input.RemoveHolding(kind, id); err != nil {
		return err
	}
	uc.metrics.RecordMutation("remove", string(kind))
	return nil
}

// AddFlow appends a freshly defaulted income or expense flow.
func (uc *PlannerUseCase) AddFlow(category domain.FlowCategory) (domain.RangeFlow, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	f, err := uc.input.AddFlow(category, uc.idGen.Generate())
	if err != nil {
		return domain.RangeFlow{}, err
	}
	uc.metrics.RecordMutation("add", string(category))
	return f, nil
}

// UpdateFlow applies field updates to one flow.
func (uc *PlannerUseCase) UpdateFlow(category domain.FlowCategory, id string, fields ...domain.FlowField) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.input.UpdateFlow(category, id, fields...); err != nil {
		return err
	}
	uc.metrics.RecordMutation("update", string(category))
	return nil
}

// RemoveFlow deletes one flow.
func (uc *PlannerUseCase) RemoveFlow(category domain.FlowCategory, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.input.RemoveFlow(category, id); err != nil {
		return err
	}
	uc.metrics.RecordMutation("remove", string(category))
	return nil
}

// AddContribution appends a defaulted contribution to one holding.
func (uc *PlannerUseCase) AddContribution(kind domain.AccountKind, holdingID string) (domain.RangeFlow, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	f, err := uc.input.AddContribution(kind, holdingID, uc.idGen.Generate())
	if err != nil {
		return domain.RangeFlow{}, err
	}
	uc.metrics.RecordMutation("add_contribution", string(kind))
	return f, nil
}

// UpdateContribution applies field updates to one contribution.
func (uc *PlannerUseCase) UpdateContribution(kind domain.AccountKind, holdingID, flowID string, fields ...domain.FlowField) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.input.UpdateContribution(kind, holdingID, flowID, fields...); err != nil {
		return err
	}
	uc.metrics.RecordMutation("update_contribution", string(kind))
	return nil
}

// RemoveContribution deletes one contribution.
func (uc *PlannerUseCase) RemoveContribution(kind domain.AccountKind, holdingID, flowID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.input.RemoveContribution(kind, holdingID, flowID); err != nil {
		return err
	}
	uc.metrics.RecordMutation("remove_contribution", string(kind))
	return nil
}

// Status reports whether a submission is in flight and the outcome of the
// last completed one.
func (uc *PlannerUseCase) Status() (submitting bool, result *domain.SimulationResult, err error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.submitting.Load(), uc.lastResult, uc.lastErr
}

// LastResult returns the last successful simulation result.
func (uc *PlannerUseCase) LastResult() (*domain.SimulationResult, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.lastResult == nil {
		return nil, domain.ErrNoResult
	}
	return uc.lastResult, nil
}
