package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/domain/entities/request"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

const requestSelect = `
	SELECT
		rr.id,
		rr.role_id,
		r.name,
		rr.client_id,
		c.name,
		rr.start_date,
		rr.end_date,
		rr.long_term,
		rr.notes,
		rr.created_at
	FROM resource_requests rr
	JOIN roles r ON r.id = rr.role_id
	LEFT JOIN clients c ON c.id = rr.client_id`

type RequestRepository struct{}

func NewRequestRepository() request.Repository {
	return &RequestRepository{}
}

func (repos *RequestRepository) List(ctx context.Context, params *request.FindParams) ([]*request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildRequestFilters(params)
	query := repo.Join(
		requestSelect,
		repo.JoinWhere(where...),
		"ORDER BY rr.start_date DESC, lower(r.name)",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list requests")
	}
	defer rows.Close()

	var results []*request.Request
	for rows.Next() {
		row, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainRequest(row))
	}
	return results, rows.Err()
}

func (repos *RequestRepository) Count(ctx context.Context, params *request.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildRequestFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM resource_requests rr", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count requests")
	}
	return count, nil
}

func scanRequest(row pgx.Row) (*models.Request, error) {
	var out models.Request
	if err := row.Scan(
		&out.ID,
		&out.RoleID,
		&out.RoleName,
		&out.ClientID,
		&out.ClientName,
		&out.StartDate,
		&out.EndDate,
		&out.LongTerm,
		&out.Notes,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func buildRequestFilters(params *request.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	if params.RoleID != nil {
		where = append(where, fmt.Sprintf("rr.role_id = $%d", len(args)+1))
		args = append(args, *params.RoleID)
	}
	if params.LongTerm != nil {
		where = append(where, fmt.Sprintf("rr.long_term = $%d", len(args)+1))
		args = append(args, *params.LongTerm)
	}
	if params.From != nil {
		where = append(where, fmt.Sprintf("rr.end_date >= $%d", len(args)+1))
		args = append(args, *params.From)
	}
	if params.To != nil {
		where = append(where, fmt.Sprintf("rr.start_date <= $%d", len(args)+1))
		args = append(args, *params.To)
	}
	return where, args
}
