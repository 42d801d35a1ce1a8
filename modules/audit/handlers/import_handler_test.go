package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/planhive/planhive/modules/audit/domain/entities/importlog"
	staffingservices "github.com/planhive/planhive/modules/staffing/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/eventbus"
	"github.com/planhive/planhive/pkg/outbox"
)

type recordingRecorder struct {
	entries []*importlog.ImportLog
}

func (r *recordingRecorder) RecordImport(_ context.Context, entry *importlog.ImportLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func newHandlerTestApp() application.Application {
	return application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(nil),
	})
}

func TestImportEventsHandler_RecordsCompletion(t *testing.T) {
	app := newHandlerTestApp()
	recorder := &recordingRecorder{}
	NewImportEventsHandler(app, recorder)

	finished := time.Date(2025, time.March, 7, 12, 30, 0, 0, time.UTC)
	event := staffingservices.ImportCompleted{
		Type:       "staffing",
		EventID:    uuid.New(),
		Warnings:   3,
		FinishedAt: finished,
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	app.EventPublisher().Publish(
		&outbox.Meta{Topic: staffingservices.TopicImportCompleted, EventID: event.EventID},
		staffingservices.TopicImportCompleted,
		json.RawMessage(payload),
	)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	require.Equal(t, event.EventID, entry.EventID)
	require.Equal(t, "staffing", entry.Type)
	require.Equal(t, 3, entry.Warnings)
	require.True(t, entry.FinishedAt.Equal(finished))
}

func TestImportEventsHandler_IgnoresOtherTopics(t *testing.T) {
	app := newHandlerTestApp()
	recorder := &recordingRecorder{}
	NewImportEventsHandler(app, recorder)

	app.EventPublisher().Publish(
		&outbox.Meta{Topic: "export.completed"},
		"export.completed",
		json.RawMessage(`{"type":"staffing"}`),
	)

	require.Empty(t, recorder.entries)
}

func TestImportEventsHandler_SkipsMalformedPayload(t *testing.T) {
	app := newHandlerTestApp()
	recorder := &recordingRecorder{}
	NewImportEventsHandler(app, recorder)

	app.EventPublisher().Publish(
		&outbox.Meta{Topic: staffingservices.TopicImportCompleted},
		staffingservices.TopicImportCompleted,
		json.RawMessage(`{"type":`),
	)

	require.Empty(t, recorder.entries)
}
