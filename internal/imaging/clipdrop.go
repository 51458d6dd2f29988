package imaging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	clipdropTextToImageURL = "https://clipdrop-api.co/text-to-image/v1"
	maxImageBytes          = 20 << 20
)

// text-to-image through the Clipdrop API
type ClipdropClient struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

func NewClipdropClient(apiKey string) *ClipdropClient {
	return &ClipdropClient{
		apiKey:     apiKey,
		url:        clipdropTextToImageURL,
		httpClient: imagingHTTPClient,
	}
}

// points the client at a different endpoint (tests, proxies)
func (c *ClipdropClient) WithURL(url string) *ClipdropClient {
	c.url = url
	return c
}

// returns PNG bytes for the prompt
func (c *ClipdropClient) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("clipdrop api key not configured")
	}

	var body bytes.Buffer

	form := multipart.NewWriter(&body)
	if err := form.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return nil, &APIError{Service: "clipdrop", StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	image, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	if len(image) == 0 {
		return nil, fmt.Errorf("empty image in response")
	}

	return image, nil
}
