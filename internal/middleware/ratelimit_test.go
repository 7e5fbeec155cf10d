package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLimiterStoreAllow(t *testing.T) {
	// 1 event/minute with burst 2: two immediate events pass, third is
	// rejected.
	s := NewLimiterStore(1, 2, time.Minute)
	defer s.Stop()

	if !s.Allow("k") {
		t.Fatal("first event should be allowed")
	}
	if !s.Allow("k") {
		t.Fatal("second event (burst) should be allowed")
	}
	if s.Allow("k") {
		t.Fatal("third event should be rejected")
	}

	// Separate keys do not share a bucket.
	if !s.Allow("other") {
		t.Fatal("fresh key should be allowed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewLimiterStore(1, 1, time.Minute)
	defer s.Stop()

	r := gin.New()
	r.POST("/login", RateLimit(s), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", code)
	}
}
