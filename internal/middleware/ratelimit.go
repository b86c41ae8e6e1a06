package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/threads-backend/pkg/clientip"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// RateLimitKeyPrefix is the Redis key prefix for request counters.
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedKeyPrefix is the Redis key prefix for blocked clients.
	BlockedKeyPrefix = "blocked:"
	// DefaultBlockDuration is how long a client that overran its window stays blocked.
	DefaultBlockDuration = 15 * time.Minute
	redisOpTimeout       = 500 * time.Millisecond
)

// RateLimiter counts requests per client in fixed Redis windows and blocks
// clients that exceed the limit. It fails open when Redis is unavailable.
type RateLimiter struct {
	rdb        *redis.Client
	limit      int
	window     time.Duration
	block      time.Duration
	trustProxy bool
	log        *zap.Logger
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, trustProxy bool, log *zap.Logger) *RateLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &RateLimiter{
		rdb:        rdb,
		limit:      limit,
		window:     window,
		block:      DefaultBlockDuration,
		trustProxy: trustProxy,
		log:        log.Named("ratelimit"),
	}
}

// clientKey prefers the caller's external id so users behind one NAT do not
// share a budget.
func (l *RateLimiter) clientKey(r *http.Request) string {
	if id := CallerID(r.Context()); id != "" {
		return "user:" + id
	}
	return "ip:" + clientip.RealClientIP(r, l.trustProxy)
}

// Middleware applies the limit to every request it wraps.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil || l.rdb == nil || l.limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.clientKey(r)
		ctx, cancel := context.WithTimeout(r.Context(), redisOpTimeout)
		defer cancel()

		blocked, err := l.rdb.Exists(ctx, BlockedKeyPrefix+key).Result()
		if err == nil && blocked > 0 {
			writeRejection(w, http.StatusTooManyRequests, "You have been temporarily blocked due to excessive requests. Please try again later.")
			return
		}

		counterKey := RateLimitKeyPrefix + key
		pipe := l.rdb.TxPipeline()
		incr := pipe.Incr(ctx, counterKey)
		pipe.ExpireNX(ctx, counterKey, l.window)
		if _, err := pipe.Exec(ctx); err != nil {
			l.log.Warn("rate limit store unavailable, allowing request", zap.String("key", key), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		count := int(incr.Val())
		if count > l.limit {
			if err := l.rdb.Set(ctx, BlockedKeyPrefix+key, "1", l.block).Err(); err != nil {
				l.log.Warn("failed to record block", zap.String("key", key), zap.Error(err))
			}
			writeRejectionBody(w, http.StatusTooManyRequests, rejection{
				Message:    "Rate limit exceeded. Please try again later.",
				RetryAfter: int(l.window.Seconds()),
			})
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(l.limit-count))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(l.window).Unix(), 10))
		next.ServeHTTP(w, r)
	})
}
