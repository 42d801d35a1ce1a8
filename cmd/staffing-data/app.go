package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/planhive/planhive/modules"
	"github.com/planhive/planhive/pkg/application"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/configuration"
	"github.com/planhive/planhive/pkg/constants"
	"github.com/planhive/planhive/pkg/eventbus"
	"github.com/planhive/planhive/pkg/intl"
)

type cliApp struct {
	app  application.Application
	pool *pgxpool.Pool
	conf *configuration.Configuration
}

func buildApp(ctx context.Context, dsn string) (*cliApp, error) {
	conf := configuration.Use()
	if strings.TrimSpace(dsn) == "" {
		dsn = conf.Database.Opts
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, withCode(exitDB, fmt.Errorf("connect: %w", err))
	}
	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		Bundle:   application.LoadBundle(),
		EventBus: eventbus.NewEventPublisher(conf.Logger()),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		pool.Close()
		return nil, withCode(exitDB, fmt.Errorf("load modules: %w", err))
	}
	return &cliApp{app: app, pool: pool, conf: conf}, nil
}

func (c *cliApp) Close() {
	c.pool.Close()
}

// requestContext mirrors what the HTTP middleware provides, so services run
// unchanged under the CLI.
func (c *cliApp) requestContext(ctx context.Context, locale string) context.Context {
	if strings.TrimSpace(locale) == "" {
		locale = c.conf.Import.DefaultLocale
	}
	ctx = context.WithValue(ctx, constants.LoggerKey, logrus.NewEntry(c.conf.Logger()))
	ctx = composables.WithPool(ctx, c.pool)
	return intl.WithLocalizer(ctx, i18n.NewLocalizer(c.app.Bundle(), locale))
}
