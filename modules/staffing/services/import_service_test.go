package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planhive/planhive/modules/staffing/importer"
	"github.com/planhive/planhive/pkg/constants"
	"github.com/planhive/planhive/pkg/outbox"
	"github.com/planhive/planhive/pkg/repo"
)

type noopTx struct{}

func (noopTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (noopTx) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (noopTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (noopTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (noopTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

type recordedInsert struct {
	table    string
	rows     [][]any
	conflict string
}

type stubStore struct {
	lookups   map[string]map[string]uuid.UUID
	inserts   []recordedInsert
	failTable string
}

func (s *stubStore) Lookup(_ context.Context, table, _, _ string) (map[string]uuid.UUID, error) {
	out := make(map[string]uuid.UUID)
	for k, v := range s.lookups[table] {
		out[k] = v
	}
	return out, nil
}

func (s *stubStore) BulkInsert(_ context.Context, table string, _ []string, rows [][]any, conflict string) error {
	if table == s.failTable {
		return assert.AnError
	}
	if len(rows) == 0 {
		return nil
	}
	s.inserts = append(s.inserts, recordedInsert{table: table, rows: rows, conflict: conflict})
	return nil
}

func importTestContext() context.Context {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	ctx := context.WithValue(context.Background(), constants.LoggerKey, logrus.NewEntry(logger))
	return context.WithValue(ctx, constants.TxKey, noopTx{})
}

type fakePublisher struct {
	tables   []pgx.Identifier
	messages []outbox.Message
}

func (p *fakePublisher) Enqueue(_ context.Context, _ repo.Tx, table pgx.Identifier, msg outbox.Message) (int64, error) {
	p.tables = append(p.tables, table)
	p.messages = append(p.messages, msg)
	return int64(len(p.messages)), nil
}

func newTestImportService(store importer.Store, pub outbox.Publisher) (*ImportService, *int) {
	svc := NewImportService(importer.NewRegistry(), store, pub)
	calls := 0
	svc.inTx = func(ctx context.Context, fn func(context.Context) error) error {
		calls++
		return fn(ctx)
	}
	return svc, &calls
}

func TestImportService_DispatchesAndEnqueues(t *testing.T) {
	store := &stubStore{}
	pub := &fakePublisher{}
	svc, txCalls := newTestImportService(store, pub)

	payload := importer.FromSheets(map[string][]map[string]any{
		"clients": {
			{"name": "ACME"},
			{"name": "Globex"},
		},
	})

	summary, err := svc.Import(importTestContext(), "core", payload)
	require.NoError(t, err)
	require.NotNil(t, summary)
	require.NotEmpty(t, summary.Message)
	require.NotNil(t, summary.Warnings)
	require.Empty(t, summary.Warnings)
	require.Equal(t, 1, *txCalls)

	require.Len(t, store.inserts, 1)
	require.Equal(t, "clients", store.inserts[0].table)
	require.Len(t, store.inserts[0].rows, 2)

	require.Len(t, pub.messages, 1)
	require.Equal(t, OutboxTable, pub.tables[0])
	require.Equal(t, TopicImportCompleted, pub.messages[0].Topic)
	require.NotEqual(t, uuid.Nil, pub.messages[0].EventID)

	var event ImportCompleted
	require.NoError(t, json.Unmarshal(pub.messages[0].Payload, &event))
	require.Equal(t, "core", event.Type)
	require.Equal(t, 0, event.Warnings)
	require.Equal(t, pub.messages[0].EventID, event.EventID)
}

func TestImportService_UnknownTypeIsFatal(t *testing.T) {
	store := &stubStore{}
	pub := &fakePublisher{}
	svc, txCalls := newTestImportService(store, pub)

	_, err := svc.Import(importTestContext(), "payroll", importer.Payload{})
	require.Error(t, err)
	require.ErrorIs(t, err, importer.ErrUnknownImportType)
	require.Zero(t, *txCalls)
	require.Empty(t, pub.messages)
}

func TestImportService_StoreFailureAbortsWithoutEvent(t *testing.T) {
	store := &stubStore{failTable: "clients"}
	pub := &fakePublisher{}
	svc, _ := newTestImportService(store, pub)

	payload := importer.FromSheets(map[string][]map[string]any{
		"clients": {{"name": "ACME"}},
	})

	_, err := svc.Import(importTestContext(), "core", payload)
	require.Error(t, err)
	require.Empty(t, pub.messages)
}

func TestImportService_WarningsReachSummaryAndEvent(t *testing.T) {
	store := &stubStore{}
	pub := &fakePublisher{}
	svc, _ := newTestImportService(store, pub)

	payload := importer.FromSheets(map[string][]map[string]any{
		"resources": {
			{"name": "Mario Rossi", "role": "Architetto"},
		},
	})

	summary, err := svc.Import(importTestContext(), "core", payload)
	require.NoError(t, err)
	require.Len(t, summary.Warnings, 1)
	require.Contains(t, summary.Warnings[0], "Mario Rossi")

	var event ImportCompleted
	require.NoError(t, json.Unmarshal(pub.messages[0].Payload, &event))
	require.Equal(t, 1, event.Warnings)
}

func TestImportService_TypeKeyIsNormalized(t *testing.T) {
	store := &stubStore{}
	pub := &fakePublisher{}
	svc, _ := newTestImportService(store, pub)

	payload := importer.FromSheets(map[string][]map[string]any{
		"clients": {{"name": "ACME"}},
	})

	_, err := svc.Import(importTestContext(), "  Core ", payload)
	require.NoError(t, err)

	var event ImportCompleted
	require.NoError(t, json.Unmarshal(pub.messages[0].Payload, &event))
	require.Equal(t, "core", event.Type)
}

func TestImportService_Types(t *testing.T) {
	svc, _ := newTestImportService(&stubStore{}, &fakePublisher{})
	require.Equal(t, []string{
		"core", "interviews", "leaves", "requests",
		"skills", "staffing", "tutors", "users",
	}, svc.Types())
}
