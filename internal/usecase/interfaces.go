package usecase

import (
	"context"
	"time"

	"github.com/planfolio/planfolio/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// EngineClient is the gateway to the external Monte Carlo projection engine.
type EngineClient interface {
	// Run submits the plan and blocks until the engine answers or the
	// context is done. The implementation must not retain the input.
	Run(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error)
	// Ping reports whether the engine is reachable.
	Ping(ctx context.Context) error
}

// ResultCache stores serialized engine results keyed by a digest of the
// request payload. A miss is reported as (nil, nil). The cache is advisory:
// callers treat every cache error as a miss.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// IDGenerator generates surrogate IDs for holdings and flows.
type IDGenerator interface {
	Generate() string
}
