package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"github.com/planhive/planhive/modules/staffing/importer"
	"github.com/planhive/planhive/modules/staffing/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/authz"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/excel"
	"github.com/planhive/planhive/pkg/middleware"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// importRunner is the slice of ImportService the controller consumes.
type importRunner interface {
	Import(ctx context.Context, typeKey string, payload importer.Payload) (*services.Summary, error)
}

// ImportController accepts workbook uploads and JSON sheet payloads and feeds
// them through the import pipeline. One request maps to one import type.
type ImportController struct {
	app      application.Application
	imports  importRunner
	basePath string
}

func NewImportController(app application.Application) application.Controller {
	return &ImportController{
		app:      app,
		imports:  app.Service(services.ImportService{}).(*services.ImportService),
		basePath: "/staffing/import",
	}
}

func (c *ImportController) Key() string {
	return c.basePath
}

func (c *ImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideLocalizer(c.app))
	router.Use(authz.RequirePage(
		c.app.Service(authz.Service{}).(*authz.Service),
		pageStaffing, authz.ActionEdit,
	))
	router.HandleFunc("/{type}", c.Import).Methods(http.MethodPost)
}

func (c *ImportController) Import(w http.ResponseWriter, r *http.Request) {
	typeKey := mux.Vars(r)["type"]

	payload, ok := c.readPayload(w, r)
	if !ok {
		return
	}

	summary, err := c.imports.Import(r.Context(), typeKey, payload)
	if err != nil {
		if errors.Is(err, importer.ErrUnknownImportType) {
			writeAPIError(w, r, http.StatusBadRequest, "STAFFING_UNKNOWN_IMPORT_TYPE",
				"unknown import type: "+strings.TrimSpace(typeKey))
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("import failed")
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_IMPORT_FAILED", "import failed")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (c *ImportController) readPayload(w http.ResponseWriter, r *http.Request) (importer.Payload, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return c.readWorkbook(w, r)
	}

	var body struct {
		Sheets map[string][]map[string]any `json:"sheets"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, configuration.Use().MaxUploadSize)).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_JSON", "invalid json body")
		return nil, false
	}
	return importer.FromSheets(body.Sheets), true
}

func (c *ImportController) readWorkbook(w http.ResponseWriter, r *http.Request) (importer.Payload, bool) {
	if err := r.ParseMultipartForm(configuration.Use().MaxUploadMemory); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_UPLOAD", "invalid multipart body")
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_MISSING_FILE", "missing file field")
		return nil, false
	}
	defer func() { _ = file.Close() }()

	mime, err := mimetype.DetectReader(file)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_UNREADABLE_FILE", "unreadable file")
		return nil, false
	}
	if !mime.Is(xlsxMIME) {
		writeAPIError(w, r, http.StatusUnsupportedMediaType, "STAFFING_UNSUPPORTED_FILE",
			"expected an xlsx workbook, got "+mime.String())
		return nil, false
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_UPLOAD_SEEK", "failed to rewind upload")
		return nil, false
	}

	wb, err := excel.OpenWorkbook(file)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_UNREADABLE_WORKBOOK", "unreadable workbook")
		return nil, false
	}
	defer func() { _ = wb.Close() }()

	sheets := make(map[string][][]string)
	for _, name := range wb.SheetNames() {
		rows, err := wb.Rows(name)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "STAFFING_UNREADABLE_SHEET",
				"unreadable sheet: "+name)
			return nil, false
		}
		sheets[name] = rows
	}
	return importer.FromTable(sheets), true
}
