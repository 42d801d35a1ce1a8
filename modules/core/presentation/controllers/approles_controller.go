package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/planhive/planhive/modules/core/domain/entities/approle"
	"github.com/planhive/planhive/modules/core/presentation/viewmodels"
	"github.com/planhive/planhive/modules/core/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/middleware"
)

// AppRolesController exposes the imported role catalog and each role's
// page-permission matrix.
type AppRolesController struct {
	app      application.Application
	roles    *services.AppRoleService
	basePath string
}

func NewAppRolesController(app application.Application) application.Controller {
	return &AppRolesController{
		app:      app,
		roles:    app.Service(services.AppRoleService{}).(*services.AppRoleService),
		basePath: "/core/roles",
	}
}

func (c *AppRolesController) Key() string {
	return c.basePath
}

func (c *AppRolesController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideLocalizer(c.app))

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}/permissions", c.Permissions).Methods(http.MethodGet)
}

func (c *AppRolesController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.roles.GetPaginated(r.Context(), &approle.FindParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.AppRole, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.AppRoleToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *AppRolesController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_ID", "invalid id")
		return
	}
	entity, err := c.roles.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, approle.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CORE_NOT_FOUND", "role not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, viewmodels.AppRoleToVM(entity))
}

func (c *AppRolesController) Permissions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_ID", "invalid id")
		return
	}
	if _, err := c.roles.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, approle.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CORE_NOT_FOUND", "role not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
		return
	}
	permissions, err := c.roles.Permissions(r.Context(), id)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.PagePermission, 0, len(permissions))
	for _, p := range permissions {
		out = append(out, viewmodels.PagePermissionToVM(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}
