package imaging

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	// background removal applied while uploading
	TransformRemoveBackground = "e_background_removal"
)

// builds the delivery transformation that generatively removes an object
func RemoveObjectTransformation(object string) string {
	return "e_gen_remove:prompt_" + url.PathEscape(strings.TrimSpace(object))
}

// signed image uploads and URL building against Cloudinary
type CloudinaryClient struct {
	cld *cloudinary.Cloudinary
}

// rawURL is cloudinary://<api_key>:<api_secret>@<cloud_name>
func NewCloudinaryClient(rawURL string) (*CloudinaryClient, error) {
	if !strings.HasPrefix(rawURL, "cloudinary://") {
		return nil, fmt.Errorf("invalid cloudinary url: expected cloudinary:// scheme")
	}

	cld, err := cloudinary.NewFromURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid cloudinary url: %w", err)
	}

	cloud := cld.Config.Cloud
	if cloud.CloudName == "" || cloud.APIKey == "" || cloud.APISecret == "" {
		return nil, fmt.Errorf("cloudinary url must include api key, secret and cloud name")
	}

	cld.Config.URL.Secure = true
	cld.Config.URL.Analytics = false

	cld.Upload.Client = http.Client{
		Timeout:   imagingHTTPClient.Timeout,
		Transport: statusRecorder{next: imagingHTTPClient.Transport},
	}

	return &CloudinaryClient{cld: cld}, nil
}

// points uploads at a different API host (tests, proxies)
func (c *CloudinaryClient) WithAPIBase(base string) *CloudinaryClient {
	c.cld.Upload.Config.API.UploadPrefix = strings.TrimRight(base, "/")
	return c
}

func (c *CloudinaryClient) CloudName() string {
	return c.cld.Config.Cloud.CloudName
}

func (c *CloudinaryClient) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.File == nil {
		return nil, fmt.Errorf("no file to upload")
	}

	var status int
	ctx = context.WithValue(ctx, statusKey{}, &status)

	resp, err := c.cld.Upload.Upload(ctx, req.File, uploader.UploadParams{
		Transformation:   req.Transformation,
		FilenameOverride: req.Filename,
	})
	if err != nil {
		if status >= http.StatusBadRequest {
			return nil, &APIError{Service: "cloudinary", StatusCode: status, Message: err.Error()}
		}
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}

	if resp.Error.Message != "" {
		if status < http.StatusBadRequest {
			status = http.StatusBadRequest
		}
		return nil, &APIError{Service: "cloudinary", StatusCode: status, Message: resp.Error.Message}
	}

	if resp.SecureURL == "" {
		return nil, fmt.Errorf("upload response missing secure_url")
	}

	return &UploadResult{
		PublicID:  resp.PublicID,
		SecureURL: resp.SecureURL,
		Format:    resp.Format,
		Bytes:     int64(resp.Bytes),
	}, nil
}

// delivery URL for an uploaded image with an optional transformation
func (c *CloudinaryClient) URL(publicID, transformation string) (string, error) {
	img, err := c.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build image url: %w", err)
	}

	img.Transformation = transformation

	return img.String()
}

type statusKey struct{}

// the SDK decodes error bodies without exposing the HTTP status; this keeps it
// so rate limits surface through APIError.HTTPStatus
type statusRecorder struct {
	next http.RoundTripper
}

func (t statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}

	resp, err := next.RoundTrip(req)
	if resp != nil {
		if status, ok := req.Context().Value(statusKey{}).(*int); ok {
			*status = resp.StatusCode
		}
	}

	return resp, err
}
