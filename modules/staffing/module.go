package staffing

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"time"

	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/importer"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence"
	"github.com/planhive/planhive/modules/staffing/presentation/controllers"
	"github.com/planhive/planhive/modules/staffing/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/authz"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/intl"
	"github.com/planhive/planhive/pkg/outbox"
)

//go:embed presentation/locales/*.json
var localeFiles embed.FS

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&localeFiles)

	schemaFS, err := fs.Sub(migrationFiles, "infrastructure/persistence/schema")
	if err != nil {
		return errors.Wrap(err, "staffing schema fs")
	}
	app.Migrations().RegisterSchema(m.Name(), schemaFS)

	app.RegisterServices(
		services.NewImportService(
			importer.NewRegistry(),
			persistence.NewImportStoreWithCeiling(configuration.Use().Import.BatchParamCeiling),
			outbox.NewPublisher(),
		),
		services.NewExportService(app.DB()),
		services.NewClientService(persistence.NewClientRepository()),
		services.NewRoleService(persistence.NewRoleRepository()),
		services.NewResourceService(persistence.NewResourceRepository()),
		services.NewProjectService(persistence.NewProjectRepository()),
		services.NewPlanningService(
			persistence.NewRequestRepository(),
			persistence.NewInterviewRepository(),
			persistence.NewLeaveRepository(),
		),
	)

	app.RegisterControllers(
		controllers.NewImportController(app),
		controllers.NewExportController(app),
		controllers.NewDirectoryController(app),
		controllers.NewPlanningController(app),
	)

	// Relay-dispatched outbox messages fan out to websocket subscribers in
	// each connection's locale. A finished import may have rewritten the
	// permission matrix, so the authz policy reloads on the same signal.
	authzService := app.Service(authz.Service{}).(*authz.Service)
	app.EventPublisher().Subscribe(func(meta *outbox.Meta, topic string, payload json.RawMessage) {
		if topic != services.TopicImportCompleted {
			return
		}
		logger := configuration.Use().Logger()
		if authzService.Mode() != authz.ModeDisabled {
			if err := authzService.Reload(context.Background()); err != nil {
				logger.WithError(err).Warn("authz reload after import failed")
			}
		}

		var event services.ImportCompleted
		if err := json.Unmarshal(payload, &event); err != nil {
			logger.WithError(err).Warn("malformed import completion event")
			return
		}
		_ = app.Websocket().ForEach(application.ChannelImports, func(ctx context.Context, conn application.Connection) error {
			msg, err := json.Marshal(importPush{
				Topic:      topic,
				Type:       event.Type,
				Message:    intl.MustT(ctx, "Staffing.Import.Completed"),
				Warnings:   event.Warnings,
				FinishedAt: event.FinishedAt,
			})
			if err != nil {
				return err
			}
			if err := conn.SendMessage(msg); err != nil {
				logger.WithError(err).Debug("websocket import push failed")
			}
			return nil
		})
	})

	return nil
}

// importPush is the frame sent to websocket clients when an import lands.
type importPush struct {
	Topic      string    `json:"topic"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Warnings   int       `json:"warnings"`
	FinishedAt time.Time `json:"finished_at"`
}

func (m *Module) Name() string {
	return "staffing"
}
