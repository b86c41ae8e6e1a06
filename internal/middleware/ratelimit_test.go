package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRateLimiter_NilClientPassesThrough(t *testing.T) {
	h := NewRateLimiter(nil, 1, time.Minute, false, nil).Middleware(okHandler)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/users/me", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	h := NewRateLimiter(rdb, 1, time.Minute, false, nil).Middleware(okHandler)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/users/me", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	rdb := startRedis(t)
	h := Identity(NewRateLimiter(rdb, 2, time.Minute, false, nil).Middleware(okHandler))

	send := func(caller string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/users/me", nil)
		req.Header.Set(UserIDHeader, caller)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := send("user_a")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, http.StatusOK, send("user_a").Code)

	rec = send("user_a")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Rate limit exceeded. Please try again later.","retry_after":60}`, rec.Body.String())

	blocked, err := rdb.Exists(context.Background(), BlockedKeyPrefix+"user:user_a").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), blocked)

	ttl, err := rdb.TTL(context.Background(), RateLimitKeyPrefix+"user:user_a").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	assert.Equal(t, http.StatusOK, send("user_b").Code)
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION to run against a real Redis")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Terminate(context.Background()) })

	host, err := rc.Host(ctx)
	require.NoError(t, err)
	port, err := rc.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}
