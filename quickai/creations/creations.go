package creations

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	ErrCreationNotFound = errors.New("creation not found")
)

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func scanCreation(row pgx.Row) (*Creation, error) {
	var c Creation

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Prompt,
		&c.Content,
		&c.Type,
		&c.Publish,
		&c.Likes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if c.Likes == nil {
		c.Likes = []string{}
	}

	return &c, nil
}

func (r *Repository) Create(ctx context.Context, req CreateRequest) (*Creation, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid creation type %q", req.Type)
	}

	return scanCreation(r.db.QueryRow(
		ctx,
		queryCreate,
		req.UserID,
		req.Prompt,
		req.Content,
		string(req.Type),
		req.Publish,
	))
}

// newest first
func (r *Repository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Creation, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountByUser, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	items, err := r.list(ctx, queryListByUser, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *Repository) ListPublished(ctx context.Context, limit, offset int) ([]Creation, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountPublished).Scan(&total); err != nil {
		return nil, 0, err
	}

	items, err := r.list(ctx, queryListPublished, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Creation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	items := []Creation{}

	for rows.Next() {
		c, err := scanCreation(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// adds or removes the user's like, returning whether the creation is now liked
func (r *Repository) ToggleLike(ctx context.Context, creationID, userID string) (bool, error) {
	var liked bool

	err := r.db.QueryRow(ctx, queryToggleLike, creationID, userID).Scan(&liked)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrCreationNotFound
	}

	if err != nil {
		return false, err
	}

	return liked, nil
}
