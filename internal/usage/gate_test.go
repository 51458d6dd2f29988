package usage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory Store for testing
type mockStore struct {
	mu         sync.Mutex
	states     map[string]*State
	getErr     error
	incrErr    error
	increments int
	releases   int
}

func newMockStore() *mockStore {
	return &mockStore{states: make(map[string]*State)}
}

func (m *mockStore) GetUsage(_ context.Context, userID string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	s, ok := m.states[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	copied := *s
	return &copied, nil
}

func (m *mockStore) IncrementFreeUsage(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.incrErr != nil {
		return 0, m.incrErr
	}

	m.increments++
	m.states[userID].FreeUsage++
	return m.states[userID].FreeUsage, nil
}

func (m *mockStore) ReserveFreeUsage(_ context.Context, userID string, limit int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.states[userID]
	if s.FreeUsage >= limit {
		return false, nil
	}

	s.FreeUsage++
	return true, nil
}

func (m *mockStore) ReleaseFreeUsage(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releases++
	if s := m.states[userID]; s.FreeUsage > 0 {
		s.FreeUsage--
	}
	return nil
}

func TestCheckAndReserve_FreeTier(t *testing.T) {
	for count := 0; count < DefaultFreeLimit; count++ {
		assert.True(t, CheckAndReserve(PlanFree, count, DefaultFreeLimit), "count %d should be allowed", count)
	}

	for _, count := range []int{10, 11, 50, 1000} {
		assert.False(t, CheckAndReserve(PlanFree, count, DefaultFreeLimit), "count %d should be denied", count)
	}
}

func TestCheckAndReserve_Premium(t *testing.T) {
	for _, count := range []int{0, 9, 10, 11, 1 << 20} {
		assert.True(t, CheckAndReserve(PlanPremium, count, DefaultFreeLimit))
	}
}

func TestCheckAndReserve_UnknownPlanIsFreeTier(t *testing.T) {
	assert.False(t, CheckAndReserve(Plan("enterprise"), 10, DefaultFreeLimit))
	assert.False(t, CheckAndReserve(Plan(""), 10, DefaultFreeLimit))
}

func TestParsePlan(t *testing.T) {
	assert.Equal(t, PlanPremium, ParsePlan("premium"))
	assert.Equal(t, PlanFree, ParsePlan("free"))
	assert.Equal(t, PlanFree, ParsePlan("gold"))
	assert.Equal(t, PlanFree, ParsePlan(""))
}

func TestGate_Check(t *testing.T) {
	g := NewGate(newMockStore())

	assert.NoError(t, g.Check(&State{Plan: PlanFree, FreeUsage: 9}))
	assert.ErrorIs(t, g.Check(&State{Plan: PlanFree, FreeUsage: 10}), ErrQuotaExceeded)
	assert.NoError(t, g.Check(&State{Plan: PlanPremium, FreeUsage: 10}))
	assert.Error(t, g.Check(nil))
}

func TestGate_CustomLimit(t *testing.T) {
	g := NewGate(newMockStore(), WithFreeLimit(3))

	assert.Equal(t, 3, g.FreeLimit())
	assert.NoError(t, g.Check(&State{Plan: PlanFree, FreeUsage: 2}))
	assert.ErrorIs(t, g.Check(&State{Plan: PlanFree, FreeUsage: 3}), ErrQuotaExceeded)
}

func TestGate_RequirePremium(t *testing.T) {
	g := NewGate(newMockStore())

	assert.ErrorIs(t, g.RequirePremium(&State{Plan: PlanFree}), ErrPremiumRequired)
	assert.NoError(t, g.RequirePremium(&State{Plan: PlanPremium}))
}

func TestGate_Remaining(t *testing.T) {
	g := NewGate(newMockStore())

	assert.Equal(t, 7, g.Remaining(&State{Plan: PlanFree, FreeUsage: 3}))
	assert.Equal(t, 0, g.Remaining(&State{Plan: PlanFree, FreeUsage: 12}))
	assert.Equal(t, -1, g.Remaining(&State{Plan: PlanPremium, FreeUsage: 3}))
}

func TestGate_LoadFailureIsFatal(t *testing.T) {
	store := newMockStore()
	store.getErr = errors.New("connection refused")
	g := NewGate(store)

	_, err := g.Load(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.getErr)
}

func TestGate_LoadRereadsEveryTime(t *testing.T) {
	store := newMockStore()
	store.states["user-1"] = &State{Plan: PlanFree, FreeUsage: 1}
	g := NewGate(store)
	ctx := context.Background()

	first, err := g.Load(ctx, "user-1")
	require.NoError(t, err)

	store.states["user-1"].FreeUsage = 5

	second, err := g.Load(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, first.FreeUsage)
	assert.Equal(t, 5, second.FreeUsage)
}

func TestGate_RecordUsage(t *testing.T) {
	store := newMockStore()
	store.states["free"] = &State{Plan: PlanFree, FreeUsage: 2}
	store.states["paid"] = &State{Plan: PlanPremium, FreeUsage: 0}
	g := NewGate(store)
	ctx := context.Background()

	require.NoError(t, g.RecordUsage(ctx, "free", PlanFree))
	require.NoError(t, g.RecordUsage(ctx, "paid", PlanPremium))

	assert.Equal(t, 3, store.states["free"].FreeUsage)
	assert.Equal(t, 0, store.states["paid"].FreeUsage)
	assert.Equal(t, 1, store.increments)
}

func TestGate_RecordUsageError(t *testing.T) {
	store := newMockStore()
	store.states["free"] = &State{Plan: PlanFree}
	store.incrErr = errors.New("timeout")
	g := NewGate(store)

	err := g.RecordUsage(context.Background(), "free", PlanFree)
	assert.ErrorIs(t, err, store.incrErr)
}

func TestTicket_DefaultModeCountsOnCommit(t *testing.T) {
	store := newMockStore()
	store.states["u"] = &State{Plan: PlanFree, FreeUsage: 4}
	g := NewGate(store)
	ctx := context.Background()

	ticket, err := g.Admit(ctx, "u", &State{Plan: PlanFree, FreeUsage: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, store.states["u"].FreeUsage, "nothing counted before commit")

	require.NoError(t, ticket.Commit(ctx))
	require.NoError(t, ticket.Commit(ctx), "second commit is a no-op")

	assert.Equal(t, 5, store.states["u"].FreeUsage)
}

func TestTicket_DefaultModeCancelCountsNothing(t *testing.T) {
	store := newMockStore()
	store.states["u"] = &State{Plan: PlanFree, FreeUsage: 4}
	g := NewGate(store)
	ctx := context.Background()

	ticket, err := g.Admit(ctx, "u", &State{Plan: PlanFree, FreeUsage: 4})
	require.NoError(t, err)
	require.NoError(t, ticket.Cancel(ctx))

	assert.Equal(t, 4, store.states["u"].FreeUsage)
	assert.Zero(t, store.releases)
}

func TestTicket_DefaultModeDeniesAtLimit(t *testing.T) {
	g := NewGate(newMockStore())

	_, err := g.Admit(context.Background(), "u", &State{Plan: PlanFree, FreeUsage: 10})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestTicket_StrictModeReservesUpFront(t *testing.T) {
	store := newMockStore()
	store.states["u"] = &State{Plan: PlanFree, FreeUsage: 9}
	g := NewGate(store, WithStrict(true))
	ctx := context.Background()

	ticket, err := g.Admit(ctx, "u", &State{Plan: PlanFree, FreeUsage: 9})
	require.NoError(t, err)
	assert.Equal(t, 10, store.states["u"].FreeUsage, "slot reserved before the external call")

	require.NoError(t, ticket.Commit(ctx))
	assert.Equal(t, 10, store.states["u"].FreeUsage, "commit does not double count")
}

func TestTicket_StrictModeCancelReleases(t *testing.T) {
	store := newMockStore()
	store.states["u"] = &State{Plan: PlanFree, FreeUsage: 9}
	g := NewGate(store, WithStrict(true))
	ctx := context.Background()

	ticket, err := g.Admit(ctx, "u", &State{Plan: PlanFree, FreeUsage: 9})
	require.NoError(t, err)
	require.NoError(t, ticket.Cancel(ctx))

	assert.Equal(t, 9, store.states["u"].FreeUsage)
	assert.Equal(t, 1, store.releases)
}

func TestTicket_StrictModeClosesRace(t *testing.T) {
	store := newMockStore()
	store.states["u"] = &State{Plan: PlanFree, FreeUsage: 9}
	g := NewGate(store, WithStrict(true))
	ctx := context.Background()

	// both requests read the same stale count of 9
	stale := &State{Plan: PlanFree, FreeUsage: 9}

	var wg sync.WaitGroup
	results := make([]error, 2)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = g.Admit(ctx, "u", stale)
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range results {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrQuotaExceeded)
		}
	}

	assert.Equal(t, 1, admitted)
	assert.Equal(t, 10, store.states["u"].FreeUsage)
}

func TestTicket_StrictModeSkipsPremium(t *testing.T) {
	store := newMockStore()
	store.states["u"] = &State{Plan: PlanPremium, FreeUsage: 0}
	g := NewGate(store, WithStrict(true))
	ctx := context.Background()

	ticket, err := g.Admit(ctx, "u", &State{Plan: PlanPremium})
	require.NoError(t, err)
	require.NoError(t, ticket.Commit(ctx))

	assert.Equal(t, 0, store.states["u"].FreeUsage)
	assert.Equal(t, PlanPremium, ticket.Plan())
}
