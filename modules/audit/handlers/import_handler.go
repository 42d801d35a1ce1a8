package handlers

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/planhive/planhive/modules/audit/domain/entities/importlog"
	auditservices "github.com/planhive/planhive/modules/audit/services"
	staffingservices "github.com/planhive/planhive/modules/staffing/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/outbox"
)

type importRecorder interface {
	RecordImport(ctx context.Context, entry *importlog.ImportLog) error
}

// ImportEventsHandler persists a history row for every completed import the
// relay dispatches.
type ImportEventsHandler struct {
	app     application.Application
	service importRecorder
	logger  *logrus.Logger
}

func NewImportEventsHandler(app application.Application, service importRecorder) *ImportEventsHandler {
	handler := &ImportEventsHandler{
		app:     app,
		service: service,
		logger:  configuration.Use().Logger(),
	}
	app.EventPublisher().Subscribe(handler.onImportCompleted)
	return handler
}

func RegisterImportEventHandlers(app application.Application) {
	NewImportEventsHandler(app, app.Service(auditservices.AuditService{}).(*auditservices.AuditService))
}

func (h *ImportEventsHandler) onImportCompleted(meta *outbox.Meta, topic string, payload json.RawMessage) {
	if topic != staffingservices.TopicImportCompleted {
		return
	}

	var event staffingservices.ImportCompleted
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.WithError(err).Warn("malformed import completion event")
		return
	}

	ctx := composables.WithPool(context.Background(), h.app.DB())
	entry := &importlog.ImportLog{
		EventID:    event.EventID,
		Type:       event.Type,
		Warnings:   event.Warnings,
		FinishedAt: event.FinishedAt,
	}
	if err := h.service.RecordImport(ctx, entry); err != nil {
		h.logger.WithError(err).
			WithField("event_id", event.EventID).
			Warn("failed to persist import log")
	}
}
