package ratelimiter

import (
	"fmt"
	"net"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const storePrefix = "payments_limiter"

// NewStore keeps counters in redis when a client is given so limits hold across replicas,
// and in process memory otherwise.
func NewStore(rdb *redis.Client) (limiter.Store, error) {
	if rdb == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix}), nil
	}

	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: storePrefix})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}

	return store, nil
}

// NewRateLimit builds a middleware from a formatted rate such as "20-M" (20 per minute).
func NewRateLimit(store limiter.Store, formatted string, keyGetter stdlib.KeyGetter, opts ...stdlib.Option) (*stdlib.Middleware, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}

	limiter := limiter.New(store, rate)

	middleware := stdlib.NewMiddleware(limiter, append([]stdlib.Option{stdlib.WithKeyGetter(keyGetter)}, opts...)...)
	return middleware, nil
}

// IPKeyGetter keys on the client host, so every connection from one address shares a counter.
// middleware.RealIP leaves a bare IP in RemoteAddr, which is used as is.
func IPKeyGetter(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
