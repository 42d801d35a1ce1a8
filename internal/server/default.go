package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/planhive/planhive/modules/core/presentation/controllers"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/constants"
	"github.com/planhive/planhive/pkg/middleware"
	"github.com/planhive/planhive/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.DefaultLoggerOptions()),

		middleware.OpsGuard(options.Configuration),

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),

		middleware.TracedMiddleware("cors"),
		middleware.Cors("http://localhost:3000", "ws://localhost:3000"),
	}

	if options.Configuration.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch options.Configuration.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(options.Configuration.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: options.Configuration.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
	)

	app.RegisterMiddleware(middlewares...)

	return server.NewHTTPServer(
		app,
		controllers.NotFound(),
		controllers.MethodNotAllowed(),
	), nil
}
