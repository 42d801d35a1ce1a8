package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimitConfig configures the global rate limiting middleware.
// Period defaults to one second, so RequestsPerPeriod is effectively RPS.
type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
	KeyGetter         func(r *http.Request) string
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	return redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "planhive:ratelimit",
	})
}

func RateLimit(config RateLimitConfig) mux.MiddlewareFunc {
	period := config.Period
	if period == 0 {
		period = time.Second
	}
	store := config.Store
	if store == nil {
		store = NewMemoryStore()
	}
	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  int64(config.RequestsPerPeriod),
	})

	options := []stdlib.Option{
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "RATE_LIMITED",
				"message": "too many requests",
			})
		}),
	}
	if config.KeyGetter != nil {
		options = append(options, stdlib.WithKeyGetter(config.KeyGetter))
	}
	mw := stdlib.NewMiddleware(instance, options...)

	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}
}
