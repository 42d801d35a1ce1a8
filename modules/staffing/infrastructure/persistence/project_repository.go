package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/domain/entities/project"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

const projectSelect = `
	SELECT
		p.id,
		p.name,
		p.client_id,
		c.name,
		p.start_date,
		p.end_date,
		p.billable,
		p.created_at
	FROM projects p
	LEFT JOIN clients c ON c.id = p.client_id`

type ProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) List(ctx context.Context, params *project.FindParams) ([]*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildProjectFilters(params)
	query := repo.Join(
		projectSelect,
		repo.JoinWhere(where...),
		"ORDER BY lower(p.name)",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	defer rows.Close()

	var results []*project.Project
	for rows.Next() {
		row, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainProject(row))
	}
	return results, rows.Err()
}

func (r *ProjectRepository) Count(ctx context.Context, params *project.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildProjectFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM projects p", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count projects")
	}
	return count, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row, err := scanProject(tx.QueryRow(ctx, repo.Join(projectSelect, "WHERE p.id = $1"), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrNotFound
		}
		return nil, errors.Wrap(err, "get project")
	}
	return toDomainProject(row), nil
}

func (r *ProjectRepository) Create(ctx context.Context, entity *project.Project) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	return tx.QueryRow(ctx,
		`INSERT INTO projects (id, name, client_id, start_date, end_date, billable)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		entity.ID, entity.Name, entity.ClientID, entity.StartDate, entity.EndDate, entity.Billable,
	).Scan(&entity.CreatedAt)
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var out models.Project
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.ClientID,
		&out.ClientName,
		&out.StartDate,
		&out.EndDate,
		&out.Billable,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func buildProjectFilters(params *project.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+q+"%")
	}
	if params.ClientID != nil {
		where = append(where, fmt.Sprintf("p.client_id = $%d", len(args)+1))
		args = append(args, *params.ClientID)
	}
	return where, args
}
