// Package ratelimit throttles requests per caller before they reach paid upstream APIs.
package ratelimit

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	apierrors "codeberg.org/quickai/server/internal/errors"
	"codeberg.org/quickai/server/internal/logger"
)

const (
	storePrefix   = "quickai:limiter"
	limitMessage  = "Too many requests. Please slow down."
	contextUserID = "user_id"
)

// builds the limiter middleware for a ulule formatted rate ("60-M", "1000-H").
// counters live in redis when a client is given so all replicas share them.
func Middleware(formatted string, client *redis.Client) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	var store limiter.Store

	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: storePrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix})
	}

	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance,
		mgin.WithKeyGetter(keyFor),
		mgin.WithLimitReachedHandler(limitReached),
		mgin.WithErrorHandler(storeFailed),
	), nil
}

// authenticated callers are limited per user, everyone else per IP
func keyFor(c *gin.Context) string {
	if userID := c.GetString(contextUserID); userID != "" {
		return "user:" + userID
	}

	return "ip:" + c.ClientIP()
}

func limitReached(c *gin.Context) {
	logger.FromContext(c.Request.Context()).Warn("rate limit reached",
		"key", keyFor(c),
		"path", c.Request.URL.Path,
	)

	apierrors.Failure(c, http.StatusTooManyRequests, limitMessage)
}

// a broken limiter store must not take the API down with it
func storeFailed(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("rate limiter store failed", "error", err)
	c.Next()
}
