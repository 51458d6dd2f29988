package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", h)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	return rr
}

func TestHandler(t *testing.T) {
	ok := PingerFunc(func(context.Context) error { return nil })
	down := PingerFunc(func(context.Context) error { return errors.New("refused") })

	rr := serve(Handler(map[string]Pinger{"postgres": ok}))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"quickai","version":"1.0.0","dependencies":{"postgres":"ok"}}`, rr.Body.String())

	rr = serve(Handler(map[string]Pinger{"postgres": ok, "redis": down}))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"redis":"unreachable"`)
	assert.Contains(t, rr.Body.String(), `"status":"degraded"`)

	rr = serve(Handler(nil))
	assert.JSONEq(t, `{"status":"healthy","service":"quickai","version":"1.0.0"}`, rr.Body.String())
}

func TestPingAndRoot(t *testing.T) {
	assert.JSONEq(t, `{"message":"pong"}`, serve(PingHandler).Body.String())
	assert.Equal(t, "Server is live!", serve(RootHandler).Body.String())
}
