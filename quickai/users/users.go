package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"codeberg.org/quickai/server/internal/usage"
)

var _ usage.Store = (*Repository)(nil)

// creates a new user repository
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.Name,
		&user.AvatarURL,
		&user.Plan,
		&user.FreeUsage,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// finds a user by OAuth provider or creates a new one
func (r *Repository) FindOrCreateByProvider(
	ctx context.Context,
	provider, providerID, email, name, avatarURL string,
) (*User, error) {
	return scanUser(r.db.QueryRow(
		ctx,
		queryFindOrCreateByProvider,
		provider,
		providerID,
		email,
		name,
		avatarURL,
	))
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usage.ErrUserNotFound
	}

	return user, err
}

// reads plan and free usage fresh from the database
func (r *Repository) GetUsage(ctx context.Context, userID string) (*usage.State, error) {
	var plan string
	var state usage.State

	err := r.db.QueryRow(ctx, queryGetUsage, userID).Scan(&plan, &state.FreeUsage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usage.ErrUserNotFound
	}

	if err != nil {
		return nil, err
	}

	state.Plan = usage.ParsePlan(plan)

	return &state, nil
}

func (r *Repository) IncrementFreeUsage(ctx context.Context, userID string) (int, error) {
	var count int

	err := r.db.QueryRow(ctx, queryIncrementFreeUsage, userID).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, usage.ErrUserNotFound
	}

	if err != nil {
		return 0, err
	}

	return count, nil
}

// no row back means the user is already at the limit
func (r *Repository) ReserveFreeUsage(ctx context.Context, userID string, limit int) (bool, error) {
	var count int

	err := r.db.QueryRow(ctx, queryReserveFreeUsage, userID, limit).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *Repository) ReleaseFreeUsage(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, queryReleaseFreeUsage, userID)
	return err
}

// switches a user's plan, called by the admin/billing hook
func (r *Repository) SetPlan(ctx context.Context, userID string, plan usage.Plan) (*User, error) {
	if plan != usage.PlanFree && plan != usage.PlanPremium {
		return nil, fmt.Errorf("unknown plan %q", plan)
	}

	user, err := scanUser(r.db.QueryRow(ctx, querySetPlan, string(plan), userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usage.ErrUserNotFound
	}

	return user, err
}
