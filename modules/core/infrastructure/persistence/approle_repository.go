package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/planhive/planhive/modules/core/domain/entities/approle"
	"github.com/planhive/planhive/modules/core/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

type AppRoleRepository struct{}

func NewAppRoleRepository() approle.Repository {
	return &AppRoleRepository{}
}

func (repos *AppRoleRepository) List(ctx context.Context, params *approle.FindParams) ([]*approle.AppRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildAppRoleFilters(params)
	query := repo.Join(
		"SELECT id, name, created_at FROM app_roles",
		repo.JoinWhere(where...),
		"ORDER BY lower(name)",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list app roles")
	}
	defer rows.Close()

	var results []*approle.AppRole
	for rows.Next() {
		var row models.AppRole
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, toDomainAppRole(&row))
	}
	return results, rows.Err()
}

func (repos *AppRoleRepository) Count(ctx context.Context, params *approle.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildAppRoleFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM app_roles", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count app roles")
	}
	return count, nil
}

func (repos *AppRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*approle.AppRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.AppRole
	if err := tx.QueryRow(ctx,
		"SELECT id, name, created_at FROM app_roles WHERE id = $1", id,
	).Scan(&row.ID, &row.Name, &row.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, approle.ErrNotFound
		}
		return nil, errors.Wrap(err, "get app role")
	}
	return toDomainAppRole(&row), nil
}

func (repos *AppRoleRepository) Permissions(ctx context.Context, roleID uuid.UUID) ([]*approle.PagePermission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx,
		"SELECT app_role_id, page, can_view, can_edit FROM page_permissions WHERE app_role_id = $1 ORDER BY page",
		roleID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list page permissions")
	}
	defer rows.Close()

	var results []*approle.PagePermission
	for rows.Next() {
		var row models.PagePermission
		if err := rows.Scan(&row.AppRoleID, &row.Page, &row.CanView, &row.CanEdit); err != nil {
			return nil, err
		}
		results = append(results, toDomainPagePermission(&row))
	}
	return results, rows.Err()
}

func buildAppRoleFilters(params *approle.FindParams) ([]string, []interface{}) {
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
