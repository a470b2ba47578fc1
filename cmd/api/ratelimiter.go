package main

import (
	"net/http"

	"github.com/devphaseX/buyr-payments/internal/ratelimiter"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
)

func (app *application) newRateLimiter() (*stdlib.Middleware, error) {
	cfg := app.cfg

	if !cfg.rateLimit.enabled {
		app.logger.Infow("rate limiting disabled")
		return nil, nil
	}

	var rdb *redis.Client
	if cfg.rateLimit.store == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.redis.addr,
			Password: cfg.redis.password,
			DB:       cfg.redis.db,
		})
	}

	store, err := ratelimiter.NewStore(rdb)
	if err != nil {
		return nil, err
	}

	return ratelimiter.NewRateLimit(store, cfg.rateLimit.rate, ratelimiter.IPKeyGetter,
		stdlib.WithLimitReachedHandler(app.rateLimitExceededResponse),
	)
}

// rateLimit applies the configured limiter, if any, to next.
func (app *application) rateLimit(next http.Handler) http.Handler {
	if app.rateLimiter == nil {
		return next
	}
	return app.rateLimiter.Handler(next)
}
