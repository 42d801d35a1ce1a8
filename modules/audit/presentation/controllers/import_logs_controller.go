package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/planhive/planhive/modules/audit/domain/entities/importlog"
	"github.com/planhive/planhive/modules/audit/presentation/viewmodels"
	"github.com/planhive/planhive/modules/audit/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/httpapi"
	"github.com/planhive/planhive/pkg/middleware"
)

// ImportLogsController exposes the import history the audit module records.
type ImportLogsController struct {
	app      application.Application
	audit    *services.AuditService
	basePath string
}

func NewImportLogsController(app application.Application) application.Controller {
	return &ImportLogsController{
		app:      app,
		audit:    app.Service(services.AuditService{}).(*services.AuditService),
		basePath: "/audit/imports",
	}
}

func (c *ImportLogsController) Key() string {
	return c.basePath
}

func (c *ImportLogsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideLocalizer(c.app))
	router.HandleFunc("", c.List).Methods(http.MethodGet)
}

func (c *ImportLogsController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.audit.ImportHistory(r.Context(), &importlog.FindParams{
		Type:   r.URL.Query().Get("type"),
		From:   queryDate(r, "from"),
		To:     queryDate(r, "to"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "AUDIT_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.ImportLog, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.ImportLogToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

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
	limit = 50
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 500 {
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
