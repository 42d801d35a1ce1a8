package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/planhive/planhive/pkg/application"
)

const dbPingTimeout = 2 * time.Second

type healthStatus string

const (
	healthStatusHealthy healthStatus = "healthy"
	healthStatusDown    healthStatus = "down"
)

type componentHealth struct {
	Status       healthStatus `json:"status"`
	ResponseTime string       `json:"responseTime,omitempty"`
	Error        string       `json:"error,omitempty"`
}

type healthResponse struct {
	Status    healthStatus               `json:"status"`
	Timestamp string                     `json:"timestamp"`
	Checks    map[string]componentHealth `json:"checks"`
}

type HealthController struct {
	app application.Application
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Get).Methods(http.MethodGet)
}

func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    healthStatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]componentHealth{},
	}

	response.Checks["database"] = c.checkDatabase(r.Context())
	status := http.StatusOK
	for _, check := range response.Checks {
		if check.Status != healthStatusHealthy {
			response.Status = healthStatusDown
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, response)
}

func (c *HealthController) checkDatabase(ctx context.Context) componentHealth {
	ctx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	start := time.Now()
	if err := c.app.DB().Ping(ctx); err != nil {
		return componentHealth{Status: healthStatusDown, Error: err.Error()}
	}
	return componentHealth{
		Status:       healthStatusHealthy,
		ResponseTime: time.Since(start).String(),
	}
}
