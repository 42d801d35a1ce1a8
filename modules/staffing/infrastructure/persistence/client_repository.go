package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/domain/entities/client"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

type ClientRepository struct{}

func NewClientRepository() client.Repository {
	return &ClientRepository{}
}

func (r *ClientRepository) List(ctx context.Context, params *client.FindParams) ([]*client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildClientFilters(params)
	query := repo.Join(
		"SELECT id, name, created_at FROM clients",
		repo.JoinWhere(where...),
		"ORDER BY lower(name)",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list clients")
	}
	defer rows.Close()

	var results []*client.Client
	for rows.Next() {
		var row models.Client
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, toDomainClient(&row))
	}
	return results, rows.Err()
}

func (r *ClientRepository) Count(ctx context.Context, params *client.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildClientFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM clients", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count clients")
	}
	return count, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Client
	if err := tx.QueryRow(ctx,
		"SELECT id, name, created_at FROM clients WHERE id = $1", id,
	).Scan(&row.ID, &row.Name, &row.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrNotFound
		}
		return nil, errors.Wrap(err, "get client")
	}
	return toDomainClient(&row), nil
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return tx.QueryRow(ctx,
		"INSERT INTO clients (id, name) VALUES ($1, $2) RETURNING created_at",
		c.ID, c.Name,
	).Scan(&c.CreatedAt)
}

func buildClientFilters(params *client.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+q+"%")
	}
	return where, args
}
