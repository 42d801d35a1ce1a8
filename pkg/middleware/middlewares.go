package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/constants"
)

// Provide stores a value in the request context under the given key.
func Provide(key constants.ContextKey, value interface{}) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), key, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Cors(allowedOrigins ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{
				http.MethodGet,
				http.MethodPost,
				http.MethodPut,
				http.MethodPatch,
				http.MethodDelete,
				http.MethodOptions,
			},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}).Handler(next)
	}
}

// RequestParams exposes per-request metadata through composables.UseParams.
// It expects WithLogger to run first so the request-id header is already set.
func RequestParams() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := &composables.Params{
				IP:        getRealIP(r, conf),
				UserAgent: r.UserAgent(),
				RequestID: getRequestID(r, conf),
				Request:   r,
				Writer:    w,
			}
			next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
		})
	}
}
