package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/planfolio/planfolio/internal/domain"
	"github.com/planfolio/planfolio/internal/usecase"
	"github.com/planfolio/planfolio/internal/usecase/mocks"
)

func TestSubmit_Success(t *testing.T) {
	var captured domain.SimulationInput
	engine := &engineStub{
		runFn: func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
			captured = input
			return &domain.SimulationResult{PercentSuccess: 87.5}, nil
		},
	}
	uc := newPlanner(engine)

	h, err := uc.AddHolding(domain.KindGrowth)
	require.NoError(t, err)
	require.NoError(t, uc.UpdateHolding(domain.KindGrowth, h.ID,
		domain.HoldingBalance(decimal.NewFromInt(50000))))

	result, err := uc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 87.5, result.PercentSuccess)

	require.Len(t, captured.GrowthAccounts, 1)
	assert.True(t, captured.GrowthAccounts[0].Balance.Equal(decimal.NewFromInt(50000)))

	submitting, last, lastErr := uc.Status()
	assert.False(t, submitting, "guard must be released after success")
	require.NotNil(t, last)
	assert.Equal(t, 87.5, last.PercentSuccess)
	assert.NoError(t, lastErr)
}

func TestSubmit_SingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var startedOnce sync.Once
	var calls atomic.Int32

	engine := &engineStub{
		runFn: func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
			calls.Add(1)
			startedOnce.Do(func() { close(started) })
			<-release
			return &domain.SimulationResult{PercentSuccess: 50}, nil
		},
	}
	uc := newPlanner(engine)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := uc.Submit(context.Background())
		assert.NoError(t, err)
	}()

	<-started

	// A second submission while one is in flight must be rejected
	// without issuing another engine call.
	_, err := uc.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	submitting, _, _ := uc.Status()
	assert.True(t, submitting)

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "exactly one engine call per cycle")

	// After the cycle completes, submitting again is allowed.
	_, err = uc.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSubmit_InFlightSnapshotImmuneToEdits(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var captured domain.SimulationInput

	engine := &engineStub{
		runFn: func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
			close(started)
			<-release
			captured = input
			return &domain.SimulationResult{PercentSuccess: 100}, nil
		},
	}
	uc := newPlanner(engine)

	h, err := uc.AddHolding(domain.KindSavings)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = uc.Submit(context.Background())
	}()

	<-started

	// Edits while the engine is working must not leak into the payload.
	require.NoError(t, uc.UpdateHolding(domain.KindSavings, h.ID, domain.HoldingName("edited mid-flight")))
	_, err = uc.AddHolding(domain.KindGrowth)
	require.NoError(t, err)

	close(release)
	wg.Wait()

	require.Len(t, captured.SavingsAccounts, 1)
	assert.Equal(t, "New savings 1", captured.SavingsAccounts[0].Name)
	assert.Empty(t, captured.GrowthAccounts)
}

func TestSubmit_EngineFailure(t *testing.T) {
	engineErr := errors.New("engine returned status 500")
	uc := newPlanner(&engineStub{
		runFn: func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
			return nil, engineErr
		},
	})

	_, err := uc.Submit(context.Background())
	require.ErrorIs(t, err, engineErr)

	submitting, result, lastErr := uc.Status()
	assert.False(t, submitting, "guard must be released after failure")
	assert.Nil(t, result, "no result may be stored on failure")
	assert.ErrorIs(t, lastErr, engineErr)

	// The failed cycle must leave the planner ready for a retry.
	_, err = uc.Submit(context.Background())
	assert.ErrorIs(t, err, engineErr)
}

func TestSubmit_ClearsPreviousResult(t *testing.T) {
	failNext := false
	uc := newPlanner(&engineStub{
		runFn: func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
			if failNext {
				return nil, errors.New("boom")
			}
			return &domain.SimulationResult{PercentSuccess: 90}, nil
		},
	})

	_, err := uc.Submit(context.Background())
	require.NoError(t, err)

	failNext = true
	_, err = uc.Submit(context.Background())
	require.Error(t, err)

	_, result, _ := uc.Status()
	assert.Nil(t, result, "stale result must not survive a failed submission")
}

func TestSubmit_GuardReleasedAfterPanic(t *testing.T) {
	uc := newPlanner(&engineStub{
		runFn: func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
			panic("engine client bug")
		},
	})

	func() {
		defer func() {
			require.NotNil(t, recover(), "expected the panic to propagate")
		}()
		_, _ = uc.Submit(context.Background())
	}()

	submitting, _, _ := uc.Status()
	assert.False(t, submitting, "guard must be released even on panic")
}

func TestSubmit_ResultCache(t *testing.T) {
	var engineCalls atomic.Int32
	engine := &engineStub{
		runFn: func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
			engineCalls.Add(1)
			return &domain.SimulationResult{PercentSuccess: 75}, nil
		},
	}

	cache := &cacheStub{entries: map[string][]byte{}}
	uc := usecase.NewPlannerUseCase(usecase.PlannerConfig{
		IDGen:    &seqIDGen{},
		Engine:   engine,
		Cache:    cache,
		CacheTTL: time.Hour,
		Logger:   zerolog.Nop(),
	})

	// First submission goes to the engine and populates the cache.
	result, err := uc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 75.0, result.PercentSuccess)
	assert.Equal(t, int32(1), engineCalls.Load())

	// An identical plan is served from the cache.
	result, err = uc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 75.0, result.PercentSuccess)
	assert.Equal(t, int32(1), engineCalls.Load(), "cached plan must not hit the engine")

	// Changing the plan changes the digest and goes back to the engine.
	_, err = uc.AddHolding(domain.KindSavings)
	require.NoError(t, err)
	_, err = uc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), engineCalls.Load())
}

func TestSubmit_CacheErrorsAreAdvisory(t *testing.T) {
	var engineCalls atomic.Int32
	engine := &engineStub{
		runFn: func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
			engineCalls.Add(1)
			return &domain.SimulationResult{PercentSuccess: 60}, nil
		},
	}
	cache := &cacheStub{
		getErr: errors.New("redis down"),
		setErr: errors.New("redis down"),
	}

	uc := usecase.NewPlannerUseCase(usecase.PlannerConfig{
		IDGen:    &seqIDGen{},
		Engine:   engine,
		Cache:    cache,
		CacheTTL: time.Hour,
		Logger:   zerolog.Nop(),
	})

	result, err := uc.Submit(context.Background())
	require.NoError(t, err, "a broken cache must not fail the submission")
	assert.Equal(t, 60.0, result.PercentSuccess)
	assert.Equal(t, int32(1), engineCalls.Load())
}

func TestSubmit_WithGomockEngine(t *testing.T) {
	ctrl := gomock.NewController(t)

	engine := mocks.NewMockEngineClient(ctrl)
	engine.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(&domain.SimulationResult{PercentSuccess: 42}, nil)

	uc := usecase.NewPlannerUseCase(usecase.PlannerConfig{
		IDGen:  &seqIDGen{},
		Engine: engine,
		Logger: zerolog.Nop(),
	})

	result, err := uc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.0, result.PercentSuccess)
}

// cacheStub is an in-memory ResultCache with injectable failures.
type cacheStub struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
}

func (c *cacheStub) Get(ctx context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *cacheStub) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	data := make([]byte, len(payload))
	copy(data, payload)
	c.entries[key] = data
	return nil
}

