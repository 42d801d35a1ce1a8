package modules

import (
	"github.com/planhive/planhive/modules/audit"
	"github.com/planhive/planhive/modules/core"
	"github.com/planhive/planhive/modules/staffing"
	"github.com/planhive/planhive/pkg/application"
)

// BuiltInModules in registration order: core first so the authorization
// service exists before staffing wires its reload hook, audit last so its
// subscriber sees the staffing event types.
var BuiltInModules = []application.Module{
	core.NewModule(),
	staffing.NewModule(),
	audit.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
