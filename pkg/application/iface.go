package application

import (
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planhive/planhive/pkg/eventbus"
)

// Application is the central DI registry modules attach themselves to.
type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Websocket() Huber
	Migrations() MigrationManager
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string

	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc

	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}

type Controller interface {
	Key() string
	Register(r *mux.Router)
}

type Module interface {
	Name() string
	Register(app Application) error
}
