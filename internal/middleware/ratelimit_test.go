package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitExhaustsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limit := RateLimit(0.1, 2)

	var lastCode int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/auth/login", nil)
		c.Request.RemoteAddr = "10.0.0.1:1234"

		limit(c)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRateLimitIsPerClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limit := RateLimit(0.1, 1)

	// First client exhausts its burst.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/auth/login", nil)
		c.Request.RemoteAddr = "10.0.0.1:1234"
		limit(c)
	}

	// A different client is unaffected.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/auth/login", nil)
	c.Request.RemoteAddr = "10.0.0.2:1234"
	limit(c)

	assert.False(t, c.IsAborted())
	assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
}
