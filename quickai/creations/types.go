package creations

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// kind of generated content
type Type string

const (
	TypeArticle      Type = "article"
	TypeBlogTitle    Type = "blog-title"
	TypeImage        Type = "image"
	TypeResumeReview Type = "resume-review"
)

func (t Type) Valid() bool {
	switch t {
	case TypeArticle, TypeBlogTitle, TypeImage, TypeResumeReview:
		return true
	}

	return false
}

// the subset of pgxpool.Pool the repository needs
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository struct {
	db DB
}

// one persisted result of a successful generation
type Creation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	Type      Type      `json:"type"`
	Publish   bool      `json:"publish"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateRequest struct {
	UserID  string
	Prompt  string
	Content string
	Type    Type
	Publish bool
}
