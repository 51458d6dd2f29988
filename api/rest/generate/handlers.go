package generate

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/quickai/server/internal/auth"
	"codeberg.org/quickai/server/internal/errors"
	"codeberg.org/quickai/server/internal/logger"
	"codeberg.org/quickai/server/internal/retry"
	"codeberg.org/quickai/server/internal/studio"
	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/creations"
)

const (
	busyMessage        = "AI is busy. Please try again after a few seconds."
	invalidBodyMessage = "Invalid request body"
)

// GenerateArticleHandler godoc
// @Summary Generate an article
// @Description Writes an article about the prompt; length (in words) picks the token budget
// @Tags ai
// @Accept json
// @Produce json
// @Param request body ArticleRequest true "Topic and target length"
// @Success 200 {object} errors.Envelope
// @Failure 429 {object} errors.Envelope
// @Router /api/v1/ai/generate-article [post]
// @Security BearerAuth
func GenerateArticleHandler(svc Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ArticleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}

		who, ok := requester(c)
		if !ok {
			return
		}

		creation, err := svc.GenerateArticle(c.Request.Context(), who, req.Prompt, int(req.Length))
		respond(c, creation, err)
	}
}

// GenerateBlogTitleHandler godoc
// @Summary Generate blog titles
// @Tags ai
// @Accept json
// @Produce json
// @Param request body BlogTitleRequest true "Keyword and category"
// @Success 200 {object} errors.Envelope
// @Failure 429 {object} errors.Envelope
// @Router /api/v1/ai/generate-blog-title [post]
// @Security BearerAuth
func GenerateBlogTitleHandler(svc Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BlogTitleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}

		who, ok := requester(c)
		if !ok {
			return
		}

		creation, err := svc.GenerateBlogTitle(c.Request.Context(), who, req.Prompt)
		respond(c, creation, err)
	}
}

// GenerateImageHandler godoc
// @Summary Generate an image (premium)
// @Description Renders the prompt, hosts the image and returns its URL
// @Tags ai
// @Accept json
// @Produce json
// @Param request body ImageRequest true "Prompt and publish flag"
// @Success 200 {object} errors.Envelope
// @Failure 429 {object} errors.Envelope
// @Router /api/v1/ai/generate-image [post]
// @Security BearerAuth
func GenerateImageHandler(svc Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}

		who, ok := requester(c)
		if !ok {
			return
		}

		creation, err := svc.GenerateImage(c.Request.Context(), who, req.Prompt, req.Publish)
		respond(c, creation, err)
	}
}

// RemoveBackgroundHandler godoc
// @Summary Remove an image background (premium)
// @Tags ai
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image to process"
// @Success 200 {object} errors.Envelope
// @Router /api/v1/ai/remove-image-background [post]
// @Security BearerAuth
func RemoveBackgroundHandler(svc Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := requester(c)
		if !ok {
			return
		}

		file, closeFile := formUpload(c, fieldImage)
		defer closeFile()

		creation, err := svc.RemoveBackground(c.Request.Context(), who, file)
		respond(c, creation, err)
	}
}

// RemoveObjectHandler godoc
// @Summary Remove an object from an image (premium)
// @Tags ai
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image to process"
// @Param object formData string true "Single object name to remove"
// @Success 200 {object} errors.Envelope
// @Router /api/v1/ai/remove-image-object [post]
// @Security BearerAuth
func RemoveObjectHandler(svc Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := requester(c)
		if !ok {
			return
		}

		file, closeFile := formUpload(c, fieldImage)
		defer closeFile()

		creation, err := svc.RemoveObject(c.Request.Context(), who, file, c.PostForm(fieldObject))
		respond(c, creation, err)
	}
}

// ReviewResumeHandler godoc
// @Summary Review a resume (premium)
// @Tags ai
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "PDF resume, 5MB max"
// @Success 200 {object} errors.Envelope
// @Router /api/v1/ai/resume-review [post]
// @Security BearerAuth
func ReviewResumeHandler(svc Studio) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := requester(c)
		if !ok {
			return
		}

		file, closeFile := formUpload(c, fieldResume)
		defer closeFile()

		creation, err := svc.ReviewResume(c.Request.Context(), who, file)
		respond(c, creation, err)
	}
}

// undecodable JSON still answers with the envelope
func invalidBody(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Debug("invalid request body", "error", err, "path", c.FullPath())
	errors.Failure(c, http.StatusBadRequest, invalidBodyMessage)
}

// builds the caller from the values set by the auth and plan middleware
func requester(c *gin.Context) (studio.Requester, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return studio.Requester{}, false
	}

	state, ok := auth.GetUsage(c)
	if !ok {
		errors.FailureInternal(c, "Failed to load usage", stderrors.New("usage state missing from context"))
		return studio.Requester{}, false
	}

	return studio.Requester{UserID: userID, Usage: state}, true
}

// opens a multipart file field; a missing field yields an empty Upload
// so the service reports it as a validation failure
func formUpload(c *gin.Context, field string) (studio.Upload, func()) {
	header, err := c.FormFile(field)
	if err != nil {
		return studio.Upload{}, func() {}
	}

	f, err := header.Open()
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("failed to open upload", "field", field, "error", err)
		return studio.Upload{}, func() {}
	}

	return studio.Upload{Filename: header.Filename, Size: header.Size, File: f}, closer(f)
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() } //nolint:errcheck
}

// maps service results onto the response envelope
func respond(c *gin.Context, creation *creations.Creation, err error) {
	if err == nil {
		errors.Success(c, creation.Content)
		return
	}

	var validation *studio.ValidationError
	var persistence *studio.PersistenceError

	switch {
	case stderrors.Is(err, usage.ErrQuotaExceeded), stderrors.Is(err, usage.ErrPremiumRequired):
		errors.Failure(c, http.StatusOK, err.Error())
	case stderrors.As(err, &validation):
		errors.Failure(c, http.StatusOK, validation.Message)
	case retry.IsRateLimited(err):
		errors.Failure(c, http.StatusTooManyRequests, busyMessage)
	case stderrors.As(err, &persistence):
		errors.FailureInternal(c, "Failed to save creation", err)
	case stderrors.Is(err, studio.ErrUsageUnavailable):
		errors.FailureInternal(c, "Failed to check usage", err)
	default:
		logger.FromContext(c.Request.Context()).Warn("generation failed", "error", err, "path", c.FullPath())
		errors.Failure(c, http.StatusOK, err.Error())
	}
}
