package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/christmas3d/shop-api/pkg/metrics"
)

func serve(r *gin.Engine, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))

	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2))
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, serve(r, "/ok", "").Code)
	require.Equal(t, http.StatusOK, serve(r, "/ok", "").Code)

	require.Equal(t, before+2, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, serve(r, "/limited", "").Code)

	w := serve(r, "/limited", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))

	// one token every two seconds
	time.Sleep(2100 * time.Millisecond)
	require.Equal(t, http.StatusOK, serve(r, "/limited", "").Code)
}

func TestRateLimitMiddleware_KeysByClientIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.1, 1))
	r.GET("/u", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, serve(r, "/u", "10.0.0.1:1000").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(r, "/u", "10.0.0.1:1001").Code)
	// another client has its own bucket
	require.Equal(t, http.StatusOK, serve(r, "/u", "10.0.0.2:1000").Code)
}

func TestRateLimitMiddleware_InstancesDoNotShareBuckets(t *testing.T) {
	strict := gin.New()
	strict.Use(RateLimitMiddleware(0.1, 1))
	strict.GET("/s", func(c *gin.Context) { c.Status(200) })

	loose := gin.New()
	loose.Use(RateLimitMiddleware(100, 10))
	loose.GET("/l", func(c *gin.Context) { c.Status(200) })

	require.Equal(t, http.StatusOK, serve(strict, "/s", "").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(strict, "/s", "").Code)
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, serve(loose, "/l", "").Code)
	}
}
