package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AnshRaj112/threads-backend/pkg/clientip"

	"golang.org/x/time/rate"
)

// Directory search runs a regex scan per request, so it gets its own budget.
// Identified callers: 30/min, burst 20. Anonymous: 10/min, burst 5.
const (
	searchIdentifiedPerMinute = 30
	searchIdentifiedBurst     = 20
	searchAnonPerMinute       = 10
	searchAnonBurst           = 5
)

// SearchRateLimit limits user directory queries per caller id, or per IP for
// anonymous callers.
func SearchRateLimit(ctx context.Context, trustProxy bool) func(http.Handler) http.Handler {
	identified := newLimiterPool(rate.Limit(searchIdentifiedPerMinute/60.0), searchIdentifiedBurst)
	anonymous := newLimiterPool(rate.Limit(searchAnonPerMinute/60.0), searchAnonBurst)
	go identified.run(ctx)
	go anonymous.run(ctx)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pool, key, limit := anonymous, clientip.RealClientIP(r, trustProxy), searchAnonBurst
			if id := CallerID(r.Context()); id != "" {
				pool, key, limit = identified, id, searchIdentifiedBurst
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			if !pool.allow(key) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				writeRejection(w, http.StatusTooManyRequests, "Too many search requests. Please slow down.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
