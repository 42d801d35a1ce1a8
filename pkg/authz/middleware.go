package authz

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/httpapi"
	"github.com/planhive/planhive/pkg/serrors"
)

// RequirePage guards a route with a page-permission check. The subject comes
// from the identity header the fronting proxy sets; a missing header
// evaluates as the anonymous subject.
func RequirePage(svc *Service, page, action string) mux.MiddlewareFunc {
	header := configuration.Use().Authz.IdentityHeader
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := NewRequest(SubjectForEmail(r.Header.Get(header)), page, action)
			if err := svc.Authorize(r.Context(), req); err != nil {
				var base *serrors.BaseError
				if errors.As(err, &base) {
					if werr := httpapi.WriteBaseError(r.Context(), w, http.StatusForbidden, base); werr != nil {
						panic(werr)
					}
					return
				}
				composables.UseLogger(r.Context()).WithError(err).Error("authz check failed")
				writeError(w, r, http.StatusInternalServerError, "AUTHZ_UNAVAILABLE", "authorization unavailable")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var meta map[string]string
	if requestID := composables.UseRequestID(r.Context()); requestID != "" {
		meta = map[string]string{"request_id": requestID}
	}
	if err := httpapi.WriteError(w, status, code, message, meta); err != nil {
		panic(err)
	}
}
