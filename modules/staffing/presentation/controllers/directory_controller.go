package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/planhive/planhive/modules/staffing/domain/entities/client"
	"github.com/planhive/planhive/modules/staffing/domain/entities/project"
	"github.com/planhive/planhive/modules/staffing/domain/entities/resource"
	"github.com/planhive/planhive/modules/staffing/domain/entities/role"
	"github.com/planhive/planhive/modules/staffing/presentation/viewmodels"
	"github.com/planhive/planhive/modules/staffing/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/authz"
	"github.com/planhive/planhive/pkg/middleware"
)

// DirectoryController serves the staffing directory: clients, roles,
// resources and projects. List, get and create, JSON in and out.
type DirectoryController struct {
	app       application.Application
	clients   *services.ClientService
	roles     *services.RoleService
	resources *services.ResourceService
	projects  *services.ProjectService
	basePath  string
}

func NewDirectoryController(app application.Application) application.Controller {
	return &DirectoryController{
		app:       app,
		clients:   app.Service(services.ClientService{}).(*services.ClientService),
		roles:     app.Service(services.RoleService{}).(*services.RoleService),
		resources: app.Service(services.ResourceService{}).(*services.ResourceService),
		projects:  app.Service(services.ProjectService{}).(*services.ProjectService),
		basePath:  "/staffing",
	}
}

func (c *DirectoryController) Key() string {
	return c.basePath + "/directory"
}

func (c *DirectoryController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideLocalizer(c.app))
	guard := authz.RequirePage(
		c.app.Service(authz.Service{}).(*authz.Service),
		pageStaffing, authz.ActionEdit,
	)

	router.HandleFunc("/clients", c.ListClients).Methods(http.MethodGet)
	router.Handle("/clients", guard(http.HandlerFunc(c.CreateClient))).Methods(http.MethodPost)
	router.HandleFunc("/clients/{id}", c.GetClient).Methods(http.MethodGet)

	router.HandleFunc("/roles", c.ListRoles).Methods(http.MethodGet)
	router.Handle("/roles", guard(http.HandlerFunc(c.CreateRole))).Methods(http.MethodPost)
	router.HandleFunc("/roles/{id}", c.GetRole).Methods(http.MethodGet)

	router.HandleFunc("/resources", c.ListResources).Methods(http.MethodGet)
	router.Handle("/resources", guard(http.HandlerFunc(c.CreateResource))).Methods(http.MethodPost)
	router.HandleFunc("/resources/{id}", c.GetResource).Methods(http.MethodGet)

	router.HandleFunc("/projects", c.ListProjects).Methods(http.MethodGet)
	router.Handle("/projects", guard(http.HandlerFunc(c.CreateProject))).Methods(http.MethodPost)
	router.HandleFunc("/projects/{id}", c.GetProject).Methods(http.MethodGet)
}

func (c *DirectoryController) ListClients(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.clients.GetPaginated(r.Context(), &client.FindParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.Client, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.ClientToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *DirectoryController) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_ID", "invalid id")
		return
	}
	entity, err := c.clients.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "STAFFING_NOT_FOUND", "client not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, viewmodels.ClientToVM(entity))
}

func (c *DirectoryController) CreateClient(w http.ResponseWriter, r *http.Request) {
	var dto client.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeValidationError(w, errs)
		return
	}
	created, err := c.clients.Create(r.Context(), &dto)
	if err != nil {
		if isUniqueViolation(err) {
			writeAPIError(w, r, http.StatusConflict, "STAFFING_NAME_CONFLICT", "client already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, viewmodels.ClientToVM(created))
}

func (c *DirectoryController) ListRoles(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.roles.GetPaginated(r.Context(), &role.FindParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.Role, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.RoleToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *DirectoryController) GetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_ID", "invalid id")
		return
	}
	entity, err := c.roles.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "STAFFING_NOT_FOUND", "role not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, viewmodels.RoleToVM(entity))
}

func (c *DirectoryController) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto role.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeValidationError(w, errs)
		return
	}
	created, err := c.roles.Create(r.Context(), &dto)
	if err != nil {
		if isUniqueViolation(err) {
			writeAPIError(w, r, http.StatusConflict, "STAFFING_NAME_CONFLICT", "role already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, viewmodels.RoleToVM(created))
}

func (c *DirectoryController) ListResources(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.resources.GetPaginated(r.Context(), &resource.FindParams{
		Q:      r.URL.Query().Get("q"),
		RoleID: queryUUID(r, "role_id"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.Resource, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.ResourceToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *DirectoryController) GetResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_ID", "invalid id")
		return
	}
	entity, err := c.resources.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "STAFFING_NOT_FOUND", "resource not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, viewmodels.ResourceToVM(entity))
}

func (c *DirectoryController) CreateResource(w http.ResponseWriter, r *http.Request) {
	var dto resource.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeValidationError(w, errs)
		return
	}
	created, err := c.resources.Create(r.Context(), &dto)
	if err != nil {
		if isUniqueViolation(err) {
			writeAPIError(w, r, http.StatusConflict, "STAFFING_NAME_CONFLICT", "resource already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, viewmodels.ResourceToVM(created))
}

func (c *DirectoryController) ListProjects(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.projects.GetPaginated(r.Context(), &project.FindParams{
		Q:        r.URL.Query().Get("q"),
		ClientID: queryUUID(r, "client_id"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.Project, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.ProjectToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *DirectoryController) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_ID", "invalid id")
		return
	}
	entity, err := c.projects.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "STAFFING_NOT_FOUND", "project not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, viewmodels.ProjectToVM(entity))
}

func (c *DirectoryController) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto project.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "STAFFING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeValidationError(w, errs)
		return
	}
	created, err := c.projects.Create(r.Context(), &dto)
	if err != nil {
		if isUniqueViolation(err) {
			writeAPIError(w, r, http.StatusConflict, "STAFFING_NAME_CONFLICT", "project already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, viewmodels.ProjectToVM(created))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
