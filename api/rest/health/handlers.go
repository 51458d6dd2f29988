package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "quickai"
	version     = "1.0.0"
	pingTimeout = 2 * time.Second
)

// Handler godoc
// @Summary Health check
// @Description Reports server health and the reachability of its dependencies
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func Handler(deps map[string]Pinger) gin.HandlerFunc {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}

	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		status := http.StatusOK
		resp := Response{Status: "healthy", Service: serviceName, Version: version}

		if len(names) > 0 {
			resp.Dependencies = make(map[string]string, len(names))
		}

		for _, name := range names {
			if err := deps[name].Ping(ctx); err != nil {
				resp.Dependencies[name] = "unreachable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}

			resp.Dependencies[name] = "ok"
		}

		c.JSON(status, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

// root route kept for uptime checkers
func RootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Server is live!")
}
