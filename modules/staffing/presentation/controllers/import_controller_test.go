package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/planhive/planhive/modules/staffing/importer"
	"github.com/planhive/planhive/modules/staffing/services"
)

type importRunnerFunc func(ctx context.Context, typeKey string, payload importer.Payload) (*services.Summary, error)

func (f importRunnerFunc) Import(ctx context.Context, typeKey string, payload importer.Payload) (*services.Summary, error) {
	return f(ctx, typeKey, payload)
}

func importRouter(run importRunnerFunc) *mux.Router {
	c := &ImportController{imports: run, basePath: "/staffing/import"}
	router := mux.NewRouter()
	router.HandleFunc(c.basePath+"/{type}", c.Import).Methods(http.MethodPost)
	return router
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Code
}

func TestImportController_JSONBody(t *testing.T) {
	var gotType string
	var gotPayload importer.Payload
	router := importRouter(func(ctx context.Context, typeKey string, payload importer.Payload) (*services.Summary, error) {
		gotType = typeKey
		gotPayload = payload
		return &services.Summary{Message: "Import completed", Warnings: []string{"clients row 3: skipped"}}, nil
	})

	body := `{"sheets": {"clients": [{"Name": "Acme", "Code": "ACM"}]}}`
	req := httptest.NewRequest(http.MethodPost, "/staffing/import/core", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"message": "Import completed", "warnings": ["clients row 3: skipped"]}`,
		rec.Body.String())
	require.Equal(t, "core", gotType)
	rows := gotPayload.Sheet("clients")
	require.Len(t, rows, 1)
	require.Equal(t, "Acme", rows[0].String("Name"))
}

func TestImportController_UnknownType(t *testing.T) {
	router := importRouter(func(ctx context.Context, typeKey string, payload importer.Payload) (*services.Summary, error) {
		return nil, importer.ErrUnknownImportType
	})

	req := httptest.NewRequest(http.MethodPost, "/staffing/import/nonsense", strings.NewReader(`{"sheets": {}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t,
		`{"code": "STAFFING_UNKNOWN_IMPORT_TYPE", "message": "unknown import type: nonsense"}`,
		rec.Body.String())
}

func TestImportController_InvalidJSON(t *testing.T) {
	calls := 0
	router := importRouter(func(ctx context.Context, typeKey string, payload importer.Payload) (*services.Summary, error) {
		calls++
		return &services.Summary{}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/staffing/import/core", strings.NewReader(`{"sheets": `))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "STAFFING_INVALID_JSON", decodeErrorCode(t, rec))
	require.Zero(t, calls)
}

func TestImportController_RejectsNonWorkbookUpload(t *testing.T) {
	calls := 0
	router := importRouter(func(ctx context.Context, typeKey string, payload importer.Payload) (*services.Summary, error) {
		calls++
		return &services.Summary{}, nil
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("just some text, not a workbook"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/staffing/import/core", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	require.Equal(t, "STAFFING_UNSUPPORTED_FILE", decodeErrorCode(t, rec))
	require.Zero(t, calls)
}

func TestImportController_MissingFileField(t *testing.T) {
	router := importRouter(func(ctx context.Context, typeKey string, payload importer.Payload) (*services.Summary, error) {
		return &services.Summary{}, nil
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("type", "core"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/staffing/import/core", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "STAFFING_MISSING_FILE", decodeErrorCode(t, rec))
}
