package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/quickai/server/internal/logger"
)

// writes {"success": true, "content": ...}
func Success(c *gin.Context, content string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Content: content})
}

// writes {"success": false, "message": ...} with the given status.
// expected refusals (quota, plan, validation) use 200 so clients read the message.
func Failure(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// logs the error and answers 500 with a generic message
func FailureInternal(c *gin.Context, message string, err error) {
	logger.FromContext(c.Request.Context()).Error(message,
		"error", err,
		"category", classifyError(err).category,
		"path", c.Request.URL.Path,
		"user_id", c.GetString("user_id"),
	)

	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: message})
}
