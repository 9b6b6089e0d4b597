package httpserver

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	stdmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit throttles the AI-backed routes per session, or per client IP for
// requests that did not present a session. formatted uses the
// limiter's "<limit>-<S|M|H|D>" notation; rdb selects a shared Redis store
// when non-nil.
func RateLimit(formatted string, rdb *redis.Client) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", formatted, err)
	}

	var store limiter.Store
	if rdb != nil {
		store, err = redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "rate_limiter:ai", MaxRetry: 3})
		if err != nil {
			return nil, fmt.Errorf("rate limit store: %w", err)
		}
	} else {
		store = memory.NewStore()
	}

	mw := stdmw.NewMiddleware(limiter.New(store, rate),
		stdmw.WithKeyGetter(func(r *http.Request) string {
			if sid := SessionID(r.Context()); sid != "" && !freshSession(r.Context()) {
				return "session:" + sid
			}
			return "ip:" + remoteIP(r)
		}),
		stdmw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			log.Warn().Str("route", routeOf(r)).Str("session", SessionID(r.Context())).Msg("ai rate limit reached")
			writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "slow down and try again shortly")
		}),
	)
	return mw.Handler, nil
}
