package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/quickai/server/internal/studio"
	"codeberg.org/quickai/server/quickai/creations"
)

// the generation operations exposed over HTTP; satisfied by *studio.Service
type Studio interface {
	GenerateArticle(ctx context.Context, who studio.Requester, prompt string, length int) (*creations.Creation, error)
	GenerateBlogTitle(ctx context.Context, who studio.Requester, prompt string) (*creations.Creation, error)
	GenerateImage(ctx context.Context, who studio.Requester, prompt string, publish bool) (*creations.Creation, error)
	RemoveBackground(ctx context.Context, who studio.Requester, file studio.Upload) (*creations.Creation, error)
	RemoveObject(ctx context.Context, who studio.Requester, file studio.Upload, object string) (*creations.Creation, error)
	ReviewResume(ctx context.Context, who studio.Requester, file studio.Upload) (*creations.Creation, error)
}

type ArticleRequest struct {
	Prompt string `json:"prompt"`
	Length Length `json:"length" swaggertype:"integer"`
}

// target article length in words. clients send it as a number or a numeric
// string; anything unparsable decodes to 0, which selects the default budget.
type Length int

func (l *Length) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*l = 0
	case float64:
		*l = Length(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			n = 0
		}
		*l = Length(n)
	default:
		return fmt.Errorf("length must be a number, got %T", raw)
	}

	return nil
}

type BlogTitleRequest struct {
	Prompt string `json:"prompt"`
}

type ImageRequest struct {
	Prompt  string `json:"prompt"`
	Publish bool   `json:"publish"`
}

const (
	fieldImage  = "image"
	fieldObject = "object"
	fieldResume = "resume"
)
