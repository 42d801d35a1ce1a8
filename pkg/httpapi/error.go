package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/intl"
	"github.com/planhive/planhive/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteBaseError renders a serrors.BaseError with its localized message and
// the request correlation ID when present.
func WriteBaseError(ctx context.Context, w http.ResponseWriter, status int, err *serrors.BaseError) error {
	var meta map[string]string
	if requestID := composables.UseRequestID(ctx); requestID != "" {
		meta = map[string]string{"request_id": requestID}
	}
	message := err.Message
	if l, ok := intl.UseLocalizer(ctx); ok {
		message = err.Localize(l)
	}
	return WriteError(w, status, err.Code, message, meta)
}
