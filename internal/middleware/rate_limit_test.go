package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/middleware"
)

func rateLimitedRouter(limit gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/runs",
		func(c *gin.Context) {
			if user := c.GetHeader("X-Test-User"); user != "" {
				c.Set("user_id", user)
			}
			c.Next()
		},
		limit,
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func postAs(r *gin.Engine, user string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitByUser(t *testing.T) {
	t.Run("throttles one user without touching another", func(t *testing.T) {
		// Zero refill rate: only the burst is available.
		r := rateLimitedRouter(middleware.RateLimitByUser(rate.Limit(0), 2))

		assert.Equal(t, http.StatusOK, postAs(r, "user-a"))
		assert.Equal(t, http.StatusOK, postAs(r, "user-a"))
		assert.Equal(t, http.StatusTooManyRequests, postAs(r, "user-a"))

		assert.Equal(t, http.StatusOK, postAs(r, "user-b"))
	})

	t.Run("anonymous requests pass through", func(t *testing.T) {
		r := rateLimitedRouter(middleware.RateLimitByUser(rate.Limit(0), 1))

		assert.Equal(t, http.StatusOK, postAs(r, ""))
		assert.Equal(t, http.StatusOK, postAs(r, ""))
	})
}
