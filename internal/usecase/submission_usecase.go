package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/planfolio/planfolio/internal/domain"
)

// Submit serializes the current plan and hands it to the engine. At most one
// submission runs at a time; a second call while one is in flight fails fast
// with domain.ErrSubmissionInFlight. The guard is released on every exit
// path, panics included, so the planner can never get stuck submitting.
//
// The plan is snapshotted by value on entry: edits made while the engine is
// working do not alter the in-flight payload and are only reflected in the
// next submission.
func (uc *PlannerUseCase) Submit(ctx context.Context) (*domain.SimulationResult, error) {
	if !uc.submitting.CompareAndSwap(false, true) {
		uc.metrics.RecordSubmission("rejected", 0)
		return nil, domain.ErrSubmissionInFlight
	}
	defer uc.submitting.Store(false)

	uc.mu.Lock()
	snapshot := uc.input.Clone()
	uc.lastResult = nil
	uc.lastErr = nil
	uc.mu.Unlock()

	start := time.Now()
	result, cached, err := uc.runSimulation(ctx, snapshot)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err != nil {
		uc.lastErr = err
		uc.metrics.RecordSubmission("error", time.Since(start))
		uc.logger.Error().Err(err).Msg("simulation submission failed")
		return nil, err
	}

	uc.lastResult = result
	outcome := "ok"
	if cached {
		outcome = "cached"
	}
	uc.metrics.RecordSubmission(outcome, time.Since(start))
	uc.logger.Info().
		Float64("percent_success", result.PercentSuccess).
		Bool("cached", cached).
		Dur("duration", time.Since(start)).
		Msg("simulation completed")
	return result, nil
}

func (uc *PlannerUseCase) runSimulation(ctx context.Context, snapshot domain.SimulationInput) (*domain.SimulationResult, bool, error) {
	key, keyErr := snapshotDigest(snapshot)

	if uc.cache != nil && keyErr == nil {
		if payload, err := uc.cache.Get(ctx, key); err != nil {
			uc.logger.Warn().Err(err).Msg("result cache lookup failed")
		} else if payload != nil {
			var result domain.SimulationResult
			if err := json.Unmarshal(payload, &result); err != nil {
				uc.logger.Warn().Err(err).Msg("discarding undecodable cached result")
			} else {
				return &result, true, nil
			}
		}
	}

	result, err := uc.engine.Run(ctx, snapshot)
	if err != nil {
		return nil, false, fmt.Errorf("engine run: %w", err)
	}

	if uc.cache != nil && keyErr == nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := uc.cache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
				uc.logger.Warn().Err(err).Msg("result cache store failed")
			}
		}
	}

	return result, false, nil
}

// snapshotDigest keys the result cache by the canonical JSON of the plan.
func snapshotDigest(snapshot domain.SimulationInput) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
