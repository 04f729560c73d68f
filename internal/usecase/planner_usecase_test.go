package usecase_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfolio/planfolio/internal/domain"
	"github.com/planfolio/planfolio/internal/usecase"
)

// seqIDGen yields deterministic sequential IDs.
type seqIDGen struct {
	mu   sync.Mutex
	next int
}

func (g *seqIDGen) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return "id-" + strconv.Itoa(g.next)
}

// engineStub is a function-backed EngineClient.
type engineStub struct {
	runFn  func(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error)
	pingFn func(ctx context.Context) error
}

func (s *engineStub) Run(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
	if s.runFn == nil {
		return &domain.SimulationResult{PercentSuccess: 100}, nil
	}
	return s.runFn(ctx, input)
}

func (s *engineStub) Ping(ctx context.Context) error {
	if s.pingFn == nil {
		return nil
	}
	return s.pingFn(ctx)
}

func newPlanner(engine usecase.EngineClient) *usecase.PlannerUseCase {
	return usecase.NewPlannerUseCase(usecase.PlannerConfig{
		IDGen:  &seqIDGen{},
		Engine: engine,
		Logger: zerolog.Nop(),
	})
}

func TestPlanner_StartsWithDefaultPlan(t *testing.T) {
	uc := newPlanner(&engineStub{})

	snapshot := uc.Snapshot()
	for _, kind := range domain.AccountKinds() {
		col, err := snapshot.Holdings(kind)
		require.NoError(t, err)
		assert.Empty(t, col, "kind %s", kind)
	}
	assert.Empty(t, snapshot.Incomes)
	assert.Empty(t, snapshot.Expenses)
	assert.Equal(t, 30, snapshot.Params.CurrentAge)
	assert.Equal(t, 65, snapshot.Params.RetirementAge)
	assert.Equal(t, 1000, snapshot.Params.Iterations)
}

func TestPlanner_AddAndUpdateHolding(t *testing.T) {
	uc := newPlanner(&engineStub{})

	h, err := uc.AddHolding(domain.KindGrowth)
	require.NoError(t, err)
	assert.Equal(t, "New growth 1", h.Name)
	assert.Equal(t, 0.05, h.ExpectedReturn)
	assert.Equal(t, 0.10, h.ReturnStdDev)
	assert.True(t, h.Balance.IsZero())

	require.NoError(t, uc.UpdateHolding(domain.KindGrowth, h.ID,
		domain.HoldingBalance(decimal.NewFromInt(50000))))

	snapshot := uc.Snapshot()
	col, err := snapshot.Holdings(domain.KindGrowth)
	require.NoError(t, err)
	require.Len(t, col, 1)
	assert.True(t, col[0].Balance.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "New growth 1", col[0].Name, "name must survive a balance update")
}

func TestPlanner_UpdateUnknownHolding(t *testing.T) {
	uc := newPlanner(&engineStub{})

	err := uc.UpdateHolding(domain.KindSavings, "nope", domain.HoldingName("x"))
	assert.ErrorIs(t, err, domain.ErrHoldingNotFound)

	err = uc.RemoveHolding(domain.KindSavings, "nope")
	assert.ErrorIs(t, err, domain.ErrHoldingNotFound)
}

func TestPlanner_FlowLifecycle(t *testing.T) {
	uc := newPlanner(&engineStub{})

	first, err := uc.AddFlow(domain.CategoryIncome)
	require.NoError(t, err)
	second, err := uc.AddFlow(domain.CategoryIncome)
	require.NoError(t, err)

	require.NoError(t, uc.RemoveFlow(domain.CategoryIncome, first.ID))

	snap := uc.Snapshot()
	flows, err := snap.Flows(domain.CategoryIncome)
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.Equal(t, second.ID, flows[0].ID)
}

func TestPlanner_ContributionLifecycle(t *testing.T) {
	uc := newPlanner(&engineStub{})

	h, err := uc.AddHolding(domain.KindIRATraditional)
	require.NoError(t, err)

	c, err := uc.AddContribution(domain.KindIRATraditional, h.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryContribution, c.Category)

	require.NoError(t, uc.UpdateContribution(domain.KindIRATraditional, h.ID, c.ID,
		domain.FlowAmount(decimal.NewFromInt(7000))))
	require.NoError(t, uc.RemoveContribution(domain.KindIRATraditional, h.ID, c.ID))

	snap := uc.Snapshot()
	got, err := snap.HoldingByID(domain.KindIRATraditional, h.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Contributions)
}

func TestPlanner_SetParameters(t *testing.T) {
	uc := newPlanner(&engineStub{})

	params := uc.SetParameters(domain.ParamCurrentAge(45), domain.ParamIterations(domain.MaxIterations*2))
	assert.Equal(t, 45, params.CurrentAge)
	assert.Equal(t, domain.MaxIterations, params.Iterations, "iterations must be clamped")
}

func TestPlanner_SnapshotIsIsolated(t *testing.T) {
	uc := newPlanner(&engineStub{})

	h, err := uc.AddHolding(domain.KindSavings)
	require.NoError(t, err)

	snapshot := uc.Snapshot()
	require.NoError(t, uc.UpdateHolding(domain.KindSavings, h.ID, domain.HoldingName("mutated")))

	col, err := snapshot.Holdings(domain.KindSavings)
	require.NoError(t, err)
	assert.Equal(t, "New savings 1", col[0].Name, "snapshot must not see later edits")
}

func TestPlanner_LastResult_Empty(t *testing.T) {
	uc := newPlanner(&engineStub{})

	_, err := uc.LastResult()
	assert.ErrorIs(t, err, domain.ErrNoResult)

	submitting, result, lastErr := uc.Status()
	assert.False(t, submitting)
	assert.Nil(t, result)
	assert.NoError(t, lastErr)
}

func TestPlanner_ConcurrentMutations(t *testing.T) {
	uc := newPlanner(&engineStub{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.AddHolding(domain.KindGrowth); err != nil && !errors.Is(err, domain.ErrUnknownKind) {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	snap := uc.Snapshot()
	col, err := snap.Holdings(domain.KindGrowth)
	require.NoError(t, err)
	assert.Len(t, col, 20)
}
