package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planfolio/planfolio/internal/adapter/engine"
	"github.com/planfolio/planfolio/internal/adapter/http/dto"
	"github.com/planfolio/planfolio/internal/domain"
)

type simulationServiceStub struct {
	submitFn     func(ctx context.Context) (*domain.SimulationResult, error)
	statusFn     func() (bool, *domain.SimulationResult, error)
	lastResultFn func() (*domain.SimulationResult, error)
}

func (s *simulationServiceStub) Submit(ctx context.Context) (*domain.SimulationResult, error) {
	return s.submitFn(ctx)
}

func (s *simulationServiceStub) Status() (bool, *domain.SimulationResult, error) {
	return s.statusFn()
}

func (s *simulationServiceStub) LastResult() (*domain.SimulationResult, error) {
	return s.lastResultFn()
}

func TestSimulationHandler_Submit_Success(t *testing.T) {
	result := &domain.SimulationResult{PercentSuccess: 87.5}
	handler := NewSimulationHandler(&simulationServiceStub{
		submitFn: func(ctx context.Context) (*domain.SimulationResult, error) { return result, nil },
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan/submit", nil)
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result == nil || resp.Result.PercentSuccess != 87.5 {
		t.Fatalf("expected percent success 87.5, got %+v", resp.Result)
	}
}

func TestSimulationHandler_Submit_InFlight(t *testing.T) {
	handler := NewSimulationHandler(&simulationServiceStub{
		submitFn: func(ctx context.Context) (*domain.SimulationResult, error) {
			return nil, domain.ErrSubmissionInFlight
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan/submit", nil)
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 while submission in flight, got %d", rec.Code)
	}
}

func TestSimulationHandler_Submit_EngineError(t *testing.T) {
	handler := NewSimulationHandler(&simulationServiceStub{
		submitFn: func(ctx context.Context) (*domain.SimulationResult, error) {
			return nil, errors.Join(errors.New("engine run"), &engine.Error{Status: 500, Message: "boom"})
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan/submit", nil)
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for engine failure, got %d", rec.Code)
	}
}

func TestSimulationHandler_Status(t *testing.T) {
	handler := NewSimulationHandler(&simulationServiceStub{
		statusFn: func() (bool, *domain.SimulationResult, error) {
			return true, nil, errors.New("previous run failed")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plan/status", nil)
	rec := httptest.NewRecorder()

	handler.Status(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Submitting {
		t.Fatal("expected submitting true")
	}
	if resp.Error != "previous run failed" {
		t.Fatalf("expected error message, got %q", resp.Error)
	}
}

func TestSimulationHandler_Result_NotReady(t *testing.T) {
	handler := NewSimulationHandler(&simulationServiceStub{
		lastResultFn: func() (*domain.SimulationResult, error) { return nil, domain.ErrNoResult },
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plan/result", nil)
	rec := httptest.NewRecorder()

	handler.Result(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before first result, got %d", rec.Code)
	}
}

func TestSimulationHandler_Result_Available(t *testing.T) {
	result := &domain.SimulationResult{PercentSuccess: 62.0}
	handler := NewSimulationHandler(&simulationServiceStub{
		lastResultFn: func() (*domain.SimulationResult, error) { return result, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plan/result", nil)
	rec := httptest.NewRecorder()

	handler.Result(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.PercentSuccess != 62.0 {
		t.Fatalf("expected percent success 62, got %v", resp.Result.PercentSuccess)
	}
}
