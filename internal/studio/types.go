package studio

import (
	"context"
	"io"

	"codeberg.org/quickai/server/internal/imaging"
	"codeberg.org/quickai/server/internal/llm"
	"codeberg.org/quickai/server/internal/retry"
	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/creations"
)

// where successful results are persisted
type CreationStore interface {
	Create(ctx context.Context, req creations.CreateRequest) (*creations.Creation, error)
}

// the authenticated caller and the usage state read for this request
type Requester struct {
	UserID string
	Usage  *usage.State
}

// an uploaded file as received from a multipart form
type Upload struct {
	Filename string
	Size     int64
	File     io.Reader
}

type Config struct {
	Gate      *usage.Gate
	Text      llm.TextGenerator
	Images    imaging.Generator
	Host      imaging.Host
	Creations CreationStore
	Retry     *retry.Policy // nil uses retry.DefaultPolicy()
}

// orchestrates gate, external call, persistence and usage accounting
type Service struct {
	gate      *usage.Gate
	text      llm.TextGenerator
	images    imaging.Generator
	host      imaging.Host
	creations CreationStore
	retry     retry.Policy
}

// one creation pipeline run
type job struct {
	kind    creations.Type
	prompt  string
	publish bool

	// premium-only operations skip free-tier metering
	premium bool

	run func(ctx context.Context) (string, error)
}
