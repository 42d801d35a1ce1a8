package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/planhive/planhive/modules/core/domain/entities/user"
	"github.com/planhive/planhive/modules/core/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

const userSelect = `
	SELECT u.id, u.email, u.name, u.app_role_id, ar.name, u.created_at
	FROM users u
	LEFT JOIN app_roles ar ON ar.id = u.app_role_id`

type UserRepository struct{}

func NewUserRepository() user.Repository {
	return &UserRepository{}
}

func (repos *UserRepository) List(ctx context.Context, params *user.FindParams) ([]*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildUserFilters(params)
	query := repo.Join(userSelect, repo.JoinWhere(where...), "ORDER BY lower(u.email)")
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer rows.Close()

	var results []*user.User
	for rows.Next() {
		row, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainUser(row))
	}
	return results, rows.Err()
}

func (repos *UserRepository) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildUserFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM users u", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return count, nil
}

func (repos *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return repos.getOne(ctx, "u.id = $1", id)
}

func (repos *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return repos.getOne(ctx, "lower(u.email) = lower($1)", strings.TrimSpace(email))
}

func (repos *UserRepository) getOne(ctx context.Context, predicate string, arg any) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row, err := scanUser(tx.QueryRow(ctx, repo.Join(userSelect, "WHERE", predicate), arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}
	return toDomainUser(row), nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	if err := row.Scan(
		&m.ID,
		&m.Email,
		&m.Name,
		&m.AppRoleID,
		&m.AppRoleName,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func buildUserFilters(params *user.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = append(where, fmt.Sprintf("(u.email ILIKE $%d OR u.name ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+q+"%")
	}
	if params.AppRoleID != nil {
		where = append(where, fmt.Sprintf("u.app_role_id = $%d", len(args)+1))
		args = append(args, *params.AppRoleID)
	}
	return where, args
}
