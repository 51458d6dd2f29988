package usage

import (
	"context"
	"fmt"
)

// decides whether a request may proceed and accounts free-tier usage.
//
// In the default mode admission is check-then-act: the counter read at request
// time is compared against the limit and incremented only after the creation has
// been written, so two concurrent requests at the limit can both be admitted.
// Strict mode reserves the slot with the store's atomic increment-if-below
// primitive before the external call and releases it if the request fails.
type Gate struct {
	store     Store
	freeLimit int
	strict    bool
}

type Option func(*Gate)

// overrides the free-tier limit (default 10)
func WithFreeLimit(limit int) Option {
	return func(g *Gate) {
		g.freeLimit = limit
	}
}

// enables atomic reservation before the external call
func WithStrict(strict bool) Option {
	return func(g *Gate) {
		g.strict = strict
	}
}

func NewGate(store Store, opts ...Option) *Gate {
	g := &Gate{
		store:     store,
		freeLimit: DefaultFreeLimit,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// pure admission rule: premium always passes, free tier passes while below the limit
func CheckAndReserve(plan Plan, freeUsage, freeLimit int) bool {
	if plan.IsPremium() {
		return true
	}

	return freeUsage < freeLimit
}

func (g *Gate) FreeLimit() int {
	return g.freeLimit
}

func (g *Gate) Strict() bool {
	return g.strict
}

// re-reads the user's state from the store; there is no local cache
func (g *Gate) Load(ctx context.Context, userID string) (*State, error) {
	state, err := g.store.GetUsage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage for user %s: %w", userID, err)
	}

	return state, nil
}

// returns ErrQuotaExceeded when a free-tier user has reached the limit
func (g *Gate) Check(state *State) error {
	if state == nil {
		return fmt.Errorf("usage state missing")
	}

	if !CheckAndReserve(state.Plan, state.FreeUsage, g.freeLimit) {
		return ErrQuotaExceeded
	}

	return nil
}

// returns ErrPremiumRequired for anything but the premium plan
func (g *Gate) RequirePremium(state *State) error {
	if state == nil {
		return fmt.Errorf("usage state missing")
	}

	if !state.Plan.IsPremium() {
		return ErrPremiumRequired
	}

	return nil
}

// how many free operations are left (-1 for premium)
func (g *Gate) Remaining(state *State) int {
	if state.Plan.IsPremium() {
		return -1
	}

	return max(g.freeLimit-state.FreeUsage, 0)
}

// asks the store to add one to the free counter; no-op for premium users.
// call only after the external call succeeded and the creation was written.
func (g *Gate) RecordUsage(ctx context.Context, userID string, plan Plan) error {
	if plan.IsPremium() {
		return nil
	}

	if _, err := g.store.IncrementFreeUsage(ctx, userID); err != nil {
		return fmt.Errorf("failed to record usage for user %s: %w", userID, err)
	}

	return nil
}

// admits a free-tier metered request and returns the ticket that settles it
func (g *Gate) Admit(ctx context.Context, userID string, state *State) (*Ticket, error) {
	if err := g.Check(state); err != nil {
		return nil, err
	}

	t := &Ticket{gate: g, userID: userID, plan: state.Plan}

	if g.strict && !state.Plan.IsPremium() {
		ok, err := g.store.ReserveFreeUsage(ctx, userID, g.freeLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve usage for user %s: %w", userID, err)
		}

		if !ok {
			return nil, ErrQuotaExceeded
		}

		t.reserved = true
	}

	return t, nil
}

// settles one admitted request: Commit after the creation was written, Cancel on failure
type Ticket struct {
	gate     *Gate
	userID   string
	plan     Plan
	reserved bool
	settled  bool
}

func (t *Ticket) Plan() Plan {
	return t.plan
}

// records usage for the admitted request. a reservation already counted it.
func (t *Ticket) Commit(ctx context.Context) error {
	if t == nil || t.settled {
		return nil
	}

	t.settled = true

	if t.reserved {
		return nil
	}

	return t.gate.RecordUsage(ctx, t.userID, t.plan)
}

// gives back a reservation taken in strict mode
func (t *Ticket) Cancel(ctx context.Context) error {
	if t == nil || t.settled {
		return nil
	}

	t.settled = true

	if !t.reserved {
		return nil
	}

	if err := t.gate.store.ReleaseFreeUsage(ctx, t.userID); err != nil {
		return fmt.Errorf("failed to release usage for user %s: %w", t.userID, err)
	}

	return nil
}
