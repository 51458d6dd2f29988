package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "codeberg.org/quickai/server/internal/errors"
	"codeberg.org/quickai/server/internal/logger"
	"codeberg.org/quickai/server/internal/usage"
)

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// validates JWT tokens and adds user info to context
func (i *TokenIssuer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			apierrors.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := i.Validate(token)
		if err != nil {
			apierrors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextIsAdmin, claims.IsAdmin)

		ctx := logger.WithContext(c.Request.Context(), logger.FromContext(c.Request.Context()).With("user_id", claims.UserID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extracts user_id from context after Middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}

// requires the is_admin claim; run after Middleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			apierrors.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// loads the caller's plan and free usage from the store on every request.
// a store failure ends the request; it is never treated as "allowed".
func PlanMiddleware(gate *usage.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		state, err := gate.Load(c.Request.Context(), userID)
		if errors.Is(err, usage.ErrUserNotFound) {
			apierrors.Unauthorized(c, "user no longer exists")
			c.Abort()
			return
		}

		if err != nil {
			apierrors.FailureInternal(c, "Failed to load usage", err)
			c.Abort()
			return
		}

		c.Set(ContextUsage, state)
		c.Next()
	}
}

// the state stored by PlanMiddleware
func GetUsage(c *gin.Context) (*usage.State, bool) {
	v, exists := c.Get(ContextUsage)
	if !exists {
		return nil, false
	}

	state, ok := v.(*usage.State)
	return state, ok
}
