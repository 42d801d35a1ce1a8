package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/planhive/planhive/modules/staffing/domain/entities/interview"
	"github.com/planhive/planhive/modules/staffing/domain/entities/leave"
	"github.com/planhive/planhive/modules/staffing/domain/entities/request"
	"github.com/planhive/planhive/modules/staffing/presentation/viewmodels"
	"github.com/planhive/planhive/modules/staffing/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/middleware"
)

// PlanningController lists imported planning data: resource requests,
// interviews and leaves.
type PlanningController struct {
	app      application.Application
	planning *services.PlanningService
	basePath string
}

func NewPlanningController(app application.Application) application.Controller {
	return &PlanningController{
		app:      app,
		planning: app.Service(services.PlanningService{}).(*services.PlanningService),
		basePath: "/staffing",
	}
}

func (c *PlanningController) Key() string {
	return c.basePath + "/planning"
}

func (c *PlanningController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideLocalizer(c.app))

	router.HandleFunc("/requests", c.ListRequests).Methods(http.MethodGet)
	router.HandleFunc("/interviews", c.ListInterviews).Methods(http.MethodGet)
	router.HandleFunc("/leaves", c.ListLeaves).Methods(http.MethodGet)
}

func (c *PlanningController) ListRequests(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.planning.Requests(r.Context(), &request.FindParams{
		RoleID:   queryUUID(r, "role_id"),
		LongTerm: queryBool(r, "long_term"),
		From:     queryDate(r, "from"),
		To:       queryDate(r, "to"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.Request, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.RequestToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *PlanningController) ListInterviews(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.planning.Interviews(r.Context(), &interview.FindParams{
		Q:       r.URL.Query().Get("q"),
		Outcome: r.URL.Query().Get("outcome"),
		From:    queryDate(r, "from"),
		To:      queryDate(r, "to"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.Interview, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.InterviewToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *PlanningController) ListLeaves(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, total, err := c.planning.Leaves(r.Context(), &leave.FindParams{
		ResourceID: queryUUID(r, "resource_id"),
		Approved:   queryBool(r, "approved"),
		From:       queryDate(r, "from"),
		To:         queryDate(r, "to"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "STAFFING_INTERNAL", "internal error")
		return
	}
	out := make([]viewmodels.Leave, 0, len(items))
	for _, e := range items {
		out = append(out, viewmodels.LeaveToVM(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}
