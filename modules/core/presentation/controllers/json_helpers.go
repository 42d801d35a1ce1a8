package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/httpapi"
)

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
