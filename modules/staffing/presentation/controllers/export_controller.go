package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/planhive/planhive/modules/staffing/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/shared"
)

// ExportController streams the staffing dataset as an xlsx attachment.
type ExportController struct {
	app      application.Application
	exports  *services.ExportService
	basePath string
}

func NewExportController(app application.Application) application.Controller {
	return &ExportController{
		app:      app,
		exports:  app.Service(services.ExportService{}).(*services.ExportService),
		basePath: "/staffing/export",
	}
}

func (c *ExportController) Key() string {
	return c.basePath
}

func (c *ExportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Export).Methods(http.MethodGet)
}

func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	var opts services.ExportOptions
	if err := shared.Decoder.Decode(&opts, r.URL.Query()); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_FILTER", "invalid export filters")
		return
	}

	data, err := c.exports.Workbook(r.Context(), opts)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("export failed")
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_EXPORT_FAILED", "export failed")
		return
	}

	filename := fmt.Sprintf("staffing-%s.xlsx", time.Now().UTC().Format(time.DateOnly))
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
