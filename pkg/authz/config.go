package authz

import (
	"github.com/sirupsen/logrus"

	"github.com/planhive/planhive/pkg/configuration"
)

// Config captures the inputs necessary to initialize the enforcement service.
type Config struct {
	Mode   Mode
	Logger *logrus.Logger
}

func (c Config) normalized() Config {
	c.Mode = sanitizeMode(c.Mode)
	return c
}

// DefaultConfig builds a Config using the global configuration singleton.
func DefaultConfig() Config {
	cfg := configuration.Use()
	mode := ModeDisabled
	if cfg.Authz.Enabled {
		mode = sanitizeMode(Mode(cfg.Authz.Mode))
	}
	return Config{
		Mode:   mode,
		Logger: cfg.Logger(),
	}
}
