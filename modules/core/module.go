package core

import (
	"embed"
	"io/fs"

	"github.com/go-faster/errors"

	"github.com/planhive/planhive/modules/core/infrastructure/persistence"
	"github.com/planhive/planhive/modules/core/presentation/controllers"
	"github.com/planhive/planhive/modules/core/services"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/authz"
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
		return errors.Wrap(err, "core schema fs")
	}
	app.Migrations().RegisterSchema(m.Name(), schemaFS)

	app.RegisterServices(
		authz.NewService(authz.DefaultConfig(), authz.NewAdapter(app.DB())),
		services.NewUserService(persistence.NewUserRepository()),
		services.NewAppRoleService(persistence.NewAppRoleRepository()),
	)

	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewUsersController(app),
		controllers.NewAppRolesController(app),
		controllers.NewWebSocketController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "core"
}
