package imaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// renders an image from a text prompt, returning encoded image bytes
type Generator interface {
	TextToImage(ctx context.Context, prompt string) ([]byte, error)
}

// stores images and produces public delivery URLs
type Host interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	URL(publicID, transformation string) (string, error)
}

type UploadRequest struct {
	Filename string
	File     io.Reader

	// eager incoming transformation, e.g. TransformRemoveBackground
	Transformation string
}

type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

// non-2xx response from an imaging service
type APIError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Service, e.StatusCode, e.Message)
}

func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// shared HTTP client for imaging API calls; uploads and renders are slow
var imagingHTTPClient = &http.Client{
	Timeout: 120 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}
