package mw

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grimwiz/karakeep/internal/logger"
	"github.com/grimwiz/karakeep/internal/utils"
)

// RateLimitRedis limits requests per client IP with a fixed one-minute
// window counted in Redis, so the limit holds across instances. Redis
// failures fail open: an unreachable counter must not take the API down
// with it.
func RateLimitRedis(client *redis.Client, perMin int, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	if perMin < 1 {
		perMin = 1
	}
	limitStr := strconv.Itoa(perMin)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := utils.ClientIP(r, trustProxy)
			window := time.Now().Unix() / 60
			key := fmt.Sprintf("ratelimit:%s:%d", ip, window)

			pipe := client.TxPipeline()
			count := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, 2*time.Minute)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Warn("rate limit counter unavailable, allowing request",
					logger.String("ip", ip),
					logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			n := count.Val()
			if n > int64(perMin) {
				retry := 60 - int(time.Now().Unix()%60)
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("X-RateLimit-Limit", limitStr)
				w.Header().Set("X-RateLimit-Remaining", "0")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limitStr)
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(max(int64(perMin)-n, 0), 10))

			next.ServeHTTP(w, r)
		})
	}
}
