package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.False(t, rl.Limit("1.2.3.4"), "попытка %d должна пройти", i+1)
	}
	assert.True(t, rl.Limit("1.2.3.4"), "четвёртая попытка должна быть отклонена")

	// Лимит считается отдельно по каждому ключу
	assert.False(t, rl.Limit("5.6.7.8"))
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	assert.False(t, rl.Limit("1.2.3.4"))
	assert.True(t, rl.Limit("1.2.3.4"))

	time.Sleep(30 * time.Millisecond)
	assert.False(t, rl.Limit("1.2.3.4"), "после истечения окна попытки снова разрешены")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(NewRateLimiter(2, time.Minute)))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
