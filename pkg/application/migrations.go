package application

import (
	"context"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// MigrationManager applies the schema migrations each module registers.
// Every module gets its own version table, so modules can evolve their
// schemas independently without clashing version numbers.
type MigrationManager interface {
	RegisterSchema(module string, fsys fs.FS)
	Run(ctx context.Context) error
	Rollback(ctx context.Context) error
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type moduleSchema struct {
	module string
	fsys   fs.FS
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []moduleSchema
}

func (m *migrationManager) RegisterSchema(module string, fsys fs.FS) {
	m.schemas = append(m.schemas, moduleSchema{module: module, fsys: fsys})
}

func (m *migrationManager) provider(schema moduleSchema) (*goose.Provider, func() error, error) {
	db := stdlib.OpenDBFromPool(m.pool)
	store, err := database.NewStore(database.DialectPostgres, "goose_db_version_"+schema.module)
	if err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrapf(err, "failed to create migration store for module %q", schema.module)
	}
	provider, err := goose.NewProvider("", db, schema.fsys, goose.WithStore(store))
	if err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrapf(err, "failed to create migration provider for module %q", schema.module)
	}
	return provider, db.Close, nil
}

func (m *migrationManager) Run(ctx context.Context) error {
	for _, schema := range m.schemas {
		provider, closeDB, err := m.provider(schema)
		if err != nil {
			return err
		}
		_, err = provider.Up(ctx)
		if closeErr := closeDB(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			return errors.Wrapf(err, "failed to apply migrations for module %q", schema.module)
		}
	}
	return nil
}

func (m *migrationManager) Rollback(ctx context.Context) error {
	for i := len(m.schemas) - 1; i >= 0; i-- {
		schema := m.schemas[i]
		provider, closeDB, err := m.provider(schema)
		if err != nil {
			return err
		}
		_, err = provider.Down(ctx)
		if closeErr := closeDB(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			return errors.Wrapf(err, "failed to roll back migrations for module %q", schema.module)
		}
	}
	return nil
}
