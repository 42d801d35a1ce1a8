package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/httpapi"
)

// pageStaffing is the permission page guarding staffing writes.
const pageStaffing = "staffing"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		panic(err)
	}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var meta map[string]string
	if requestID := composables.UseRequestID(r.Context()); requestID != "" {
		meta = map[string]string{"request_id": requestID}
	}
	if err := httpapi.WriteError(w, status, code, message, meta); err != nil {
		panic(err)
	}
}

// writeValidationError reports per-field validation messages in the meta map.
func writeValidationError(w http.ResponseWriter, errs map[string]string) {
	if err := httpapi.WriteError(w, http.StatusUnprocessableEntity,
		"STAFFING_VALIDATION_FAILED", "validation failed", errs); err != nil {
		panic(err)
	}
}

func pagination(r *http.Request) (limit, offset int) {
	conf := configuration.Use()
	limit = conf.PageSize
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			limit = parsed
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	return id, err == nil
}

func queryUUID(r *http.Request, name string) *uuid.UUID {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func queryDate(r *http.Request, name string) *time.Time {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil
	}
	return &t
}

func queryBool(r *http.Request, name string) *bool {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
