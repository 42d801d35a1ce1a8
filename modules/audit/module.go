package audit

import (
	"embed"
	"io/fs"

	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/audit/handlers"
	"github.com/planhive/planhive/modules/audit/infrastructure/persistence"
	"github.com/planhive/planhive/modules/audit/presentation/controllers"
	"github.com/planhive/planhive/modules/audit/services"
	"github.com/planhive/planhive/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	schemaFS, err := fs.Sub(migrationFiles, "infrastructure/persistence/schema")
	if err != nil {
		return errors.Wrap(err, "audit schema fs")
	}
	app.Migrations().RegisterSchema(m.Name(), schemaFS)

	app.RegisterServices(
		services.NewAuditService(persistence.NewImportLogRepository()),
	)
	app.RegisterControllers(
		controllers.NewImportLogsController(app),
	)
	handlers.RegisterImportEventHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "audit"
}
