package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/planhive/planhive/modules/staffing/importer"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/intl"
	"github.com/planhive/planhive/pkg/outbox"
)

// OutboxTable backs the staffing relay. Import completions are enqueued here
// inside the import transaction, so an event exists iff the data committed.
var OutboxTable = pgx.Identifier{"staffing_outbox"}

const TopicImportCompleted = "import.completed"

// Summary is the import result surfaced to API and CLI callers. Warnings is
// never nil and preserves sheet order.
type Summary struct {
	Message  string   `json:"message"`
	Warnings []string `json:"warnings"`
}

// ImportCompleted is the outbox payload for TopicImportCompleted.
type ImportCompleted struct {
	Type       string    `json:"type"`
	EventID    uuid.UUID `json:"event_id"`
	Warnings   int       `json:"warnings"`
	FinishedAt time.Time `json:"finished_at"`
}

type importMetrics struct {
	imports  *prometheus.CounterVec
	warnings *prometheus.CounterVec
}

var importMetricsSingleton = sync.OnceValue(func() *importMetrics {
	return &importMetrics{
		imports: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffing",
			Name:      "imports_total",
			Help:      "Total number of import invocations.",
		}, []string{"type", "result"}),
		warnings: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffing",
			Name:      "import_warnings_total",
			Help:      "Total number of rows skipped or partially resolved during imports.",
		}, []string{"type"}),
	}
})

// ImportService dispatches payloads to the registered importer and owns the
// transaction: one invocation, one transaction, warnings for row defects,
// rollback for everything else.
type ImportService struct {
	registry  *importer.Registry
	store     importer.Store
	publisher outbox.Publisher
	inTx      func(context.Context, func(context.Context) error) error
	m         *importMetrics
}

func NewImportService(registry *importer.Registry, store importer.Store, publisher outbox.Publisher) *ImportService {
	return &ImportService{
		registry:  registry,
		store:     store,
		publisher: publisher,
		inTx:      composables.InTx,
		m:         importMetricsSingleton(),
	}
}

func (s *ImportService) Types() []string {
	return s.registry.Keys()
}

func (s *ImportService) Import(ctx context.Context, typeKey string, payload importer.Payload) (*Summary, error) {
	typeKey = strings.ToLower(strings.TrimSpace(typeKey))
	imp, err := s.registry.Get(typeKey)
	if err != nil {
		return nil, err
	}

	warnings := &importer.Warnings{}
	err = s.inTx(ctx, func(txCtx context.Context) error {
		if err := imp.Import(txCtx, s.store, payload, warnings); err != nil {
			return err
		}
		return s.enqueueCompleted(txCtx, typeKey, warnings.Len())
	})
	if err != nil {
		s.m.imports.WithLabelValues(typeKey, "error").Inc()
		return nil, err
	}

	s.m.imports.WithLabelValues(typeKey, "ok").Inc()
	s.m.warnings.WithLabelValues(typeKey).Add(float64(warnings.Len()))

	composables.UseLogger(ctx).
		WithField("type", typeKey).
		WithField("warnings", warnings.Len()).
		Info("import completed")

	return &Summary{
		Message:  intl.T(ctx, "Staffing.Import.Completed", nil),
		Warnings: warnings.List(),
	}, nil
}

func (s *ImportService) enqueueCompleted(ctx context.Context, typeKey string, warnings int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	event := ImportCompleted{
		Type:       typeKey,
		EventID:    uuid.New(),
		Warnings:   warnings,
		FinishedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = s.publisher.Enqueue(ctx, tx, OutboxTable, outbox.Message{
		Topic:   TopicImportCompleted,
		EventID: event.EventID,
		Payload: payload,
	})
	return err
}
