package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/planhive/planhive/modules/core/domain/entities/user"
	"github.com/planhive/planhive/modules/core/presentation/viewmodels"
	"github.com/planhive/planhive/modules/core/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/middleware"
)

// UsersController lists the accounts the users import materialized. The API
// is read-only: imports are the sole writer.
type UsersController struct {
	app      application.Application
	users    *services.UserService
	basePath string
}

func NewUsersController(app application.Application) application.Controller {
	return &UsersController{
		app:      app,
		users:    app.Service(services.UserService{}).(*services.UserService),
		basePath: "/core/users",
	}
}

func (c *UsersController) Key() string {
	return c.basePath
}

func (c *UsersController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideLocalizer(c.app))

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
}

func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.users.GetPaginated(r.Context(), &user.FindParams{
		Q:         r.URL.Query().Get("q"),
		AppRoleID: queryUUID(r, "app_role_id"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.User, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.UserToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "CORE_INVALID_ID", "invalid id")
		return
	}
	entity, err := c.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CORE_NOT_FOUND", "user not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CORE_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, viewmodels.UserToVM(entity))
}
