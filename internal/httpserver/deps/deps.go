package deps

import (
	"time"

	"github.com/grimwiz/karakeep/internal/bookmarks"
	"github.com/grimwiz/karakeep/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Deps is everything route registrars need, threaded through the
// registry instead of package-level state.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Service     *bookmarks.Service // shared operation façade
	SearchLimit int                // default page size when the request omits limit

	TrustProxy  bool          // resolve the client IP from proxy headers
	RedisClient *redis.Client // nil unless the redis-backed rate limiter is enabled
	RateBurst   int
	RatePerMin  int
}
