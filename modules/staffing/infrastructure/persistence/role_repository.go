package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/domain/entities/role"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

type RoleRepository struct{}

func NewRoleRepository() role.Repository {
	return &RoleRepository{}
}

func (r *RoleRepository) List(ctx context.Context, params *role.FindParams) ([]*role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildRoleFilters(params)
	query := repo.Join(
		"SELECT id, name, created_at FROM roles",
		repo.JoinWhere(where...),
		"ORDER BY lower(name)",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list roles")
	}
	defer rows.Close()

	var results []*role.Role
	for rows.Next() {
		var row models.Role
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, toDomainRole(&row))
	}
	return results, rows.Err()
}

func (r *RoleRepository) Count(ctx context.Context, params *role.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildRoleFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM roles", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count roles")
	}
	return count, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Role
	if err := tx.QueryRow(ctx,
		"SELECT id, name, created_at FROM roles WHERE id = $1", id,
	).Scan(&row.ID, &row.Name, &row.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, role.ErrNotFound
		}
		return nil, errors.Wrap(err, "get role")
	}
	return toDomainRole(&row), nil
}

func (r *RoleRepository) Create(ctx context.Context, entity *role.Role) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	return tx.QueryRow(ctx,
		"INSERT INTO roles (id, name) VALUES ($1, $2) RETURNING created_at",
		entity.ID, entity.Name,
	).Scan(&entity.CreatedAt)
}

func buildRoleFilters(params *role.FindParams) ([]string, []interface{}) {
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
