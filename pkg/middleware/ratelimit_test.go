package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLimitedHandler(t *testing.T, limit int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return NewRateLimiter(client, limit, time.Minute).Middleware(ok), mr
}

func hit(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/inventory", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	h, _ := newLimitedHandler(t, 2)

	first := hit(h, "10.0.0.1:5000")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5001").Code)

	rejected := hit(h, "10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.Equal(t, "0", rejected.Header().Get("X-RateLimit-Remaining"))

	// other clients have their own budget
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:5000").Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	h, mr := newLimitedHandler(t, 1)
	mr.Close()

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.5:4000"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
