package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/domain/entities/leave"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

const leaveSelect = `
	SELECT
		l.id,
		l.resource_id,
		res.name,
		l.start_date,
		l.end_date,
		l.kind,
		l.approved,
		l.created_at
	FROM leaves l
	JOIN resources res ON res.id = l.resource_id`

type LeaveRepository struct{}

func NewLeaveRepository() leave.Repository {
	return &LeaveRepository{}
}

func (repos *LeaveRepository) List(ctx context.Context, params *leave.FindParams) ([]*leave.Leave, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildLeaveFilters(params)
	query := repo.Join(
		leaveSelect,
		repo.JoinWhere(where...),
		"ORDER BY l.start_date DESC, lower(res.name)",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list leaves")
	}
	defer rows.Close()

	var results []*leave.Leave
	for rows.Next() {
		row, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainLeave(row))
	}
	return results, rows.Err()
}

func (repos *LeaveRepository) Count(ctx context.Context, params *leave.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildLeaveFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM leaves l", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count leaves")
	}
	return count, nil
}

func scanLeave(row pgx.Row) (*models.Leave, error) {
	var out models.Leave
	if err := row.Scan(
		&out.ID,
		&out.ResourceID,
		&out.ResourceName,
		&out.StartDate,
		&out.EndDate,
		&out.Kind,
		&out.Approved,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func buildLeaveFilters(params *leave.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	if params.ResourceID != nil {
		where = append(where, fmt.Sprintf("l.resource_id = $%d", len(args)+1))
		args = append(args, *params.ResourceID)
	}
	if params.Approved != nil {
		where = append(where, fmt.Sprintf("l.approved = $%d", len(args)+1))
		args = append(args, *params.Approved)
	}
	if params.From != nil {
		where = append(where, fmt.Sprintf("l.end_date >= $%d", len(args)+1))
		args = append(args, *params.From)
	}
	if params.To != nil {
		where = append(where, fmt.Sprintf("l.start_date <= $%d", len(args)+1))
		args = append(args, *params.To)
	}
	return where, args
}
