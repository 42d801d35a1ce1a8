package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/domain/entities/resource"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

const resourceSelect = `
	SELECT
		res.id,
		res.name,
		res.email,
		res.role_id,
		r.name,
		res.hire_date,
		res.exit_date,
		res.daily_rate_cents,
		res.daily_rate_currency,
		rt.tutor_id,
		res.created_at
	FROM resources res
	LEFT JOIN roles r ON r.id = res.role_id
	LEFT JOIN resource_tutors rt ON rt.resource_id = res.id`

type ResourceRepository struct{}

func NewResourceRepository() resource.Repository {
	return &ResourceRepository{}
}

func (repos *ResourceRepository) List(ctx context.Context, params *resource.FindParams) ([]*resource.Resource, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildResourceFilters(params)
	query := repo.Join(
		resourceSelect,
		repo.JoinWhere(where...),
		"ORDER BY lower(res.name)",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list resources")
	}
	defer rows.Close()

	var results []*resource.Resource
	for rows.Next() {
		row, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainResource(row))
	}
	return results, rows.Err()
}

func (repos *ResourceRepository) Count(ctx context.Context, params *resource.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildResourceFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM resources res", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count resources")
	}
	return count, nil
}

func (repos *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row, err := scanResource(tx.QueryRow(ctx, repo.Join(resourceSelect, "WHERE res.id = $1"), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, resource.ErrNotFound
		}
		return nil, errors.Wrap(err, "get resource")
	}
	return toDomainResource(row), nil
}

func (repos *ResourceRepository) Create(ctx context.Context, entity *resource.Resource) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	var cents *int64
	var currency *string
	if entity.DailyRate != nil {
		amount := entity.DailyRate.Amount()
		code := entity.DailyRate.Currency().Code
		cents, currency = &amount, &code
	}
	return tx.QueryRow(ctx,
		`INSERT INTO resources (id, name, email, role_id, hire_date, exit_date, daily_rate_cents, daily_rate_currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		entity.ID, entity.Name, entity.Email, entity.RoleID,
		entity.HireDate, entity.ExitDate, cents, currency,
	).Scan(&entity.CreatedAt)
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var out models.Resource
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.Email,
		&out.RoleID,
		&out.RoleName,
		&out.HireDate,
		&out.ExitDate,
		&out.DailyRateCents,
		&out.DailyRateCurrency,
		&out.TutorID,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func buildResourceFilters(params *resource.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = append(where, fmt.Sprintf("(res.name ILIKE $%d OR res.email ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+q+"%")
	}
	if params.RoleID != nil {
		where = append(where, fmt.Sprintf("res.role_id = $%d", len(args)+1))
		args = append(args, *params.RoleID)
	}
	return where, args
}
