package middleware

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"notification-service/pkg/response"
)

// RateLimit is a fixed-window limiter backed by redis. Counting failures fail
// open; a throttling outage must not take the API down with it.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := fmt.Sprintf("rl:%s:%s", scope, ip)

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				log.Printf("⚠️ rate limit incr failed for %s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(r.Context(), key, window)
			}
			if count > int64(limit) {
				response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
