package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cleanreports/internal/middleware"
)

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := middleware.NewIPRateLimiter(0.001, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestRateLimit_JSON429(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(0.001, 1), nil))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", http.NoBody)
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_CustomRejection(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(0.001, 0), func(c *gin.Context) {
		c.String(http.StatusTooManyRequests, "slow down")
	}))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "slow down", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
