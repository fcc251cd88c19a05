package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			if !rl.Allow("1.2.3.4") {
				t.Fatalf("call %d should be allowed", i+1)
			}
		}
	})

	t.Run("over limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			rl.Allow("1.2.3.4")
		}
		if rl.Allow("1.2.3.4") {
			t.Error("fourth call should be rejected")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		rl.Allow("1.2.3.4")
		if !rl.Allow("5.6.7.8") {
			t.Error("a different key should have its own budget")
		}
	})

	t.Run("window resets", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)

		rl.Allow("1.2.3.4")
		if rl.Allow("1.2.3.4") {
			t.Fatal("second call inside the window should be rejected")
		}

		time.Sleep(15 * time.Millisecond)
		if !rl.Allow("1.2.3.4") {
			t.Error("call after the window should be allowed")
		}
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewRateLimiter(2, time.Minute).Middleware())
	router.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request should be limited, got %v", statuses)
	}
}
