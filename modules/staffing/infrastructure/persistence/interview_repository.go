package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/staffing/domain/entities/interview"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

const interviewSelect = `
	SELECT
		i.id,
		i.candidate_name,
		i.candidate_email,
		i.role_id,
		r.name,
		i.interview_date,
		i.interviewer,
		i.outcome,
		i.notes,
		i.created_at
	FROM interviews i
	LEFT JOIN roles r ON r.id = i.role_id`

type InterviewRepository struct{}

func NewInterviewRepository() interview.Repository {
	return &InterviewRepository{}
}

func (repos *InterviewRepository) List(ctx context.Context, params *interview.FindParams) ([]*interview.Interview, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildInterviewFilters(params)
	query := repo.Join(
		interviewSelect,
		repo.JoinWhere(where...),
		"ORDER BY i.interview_date DESC, lower(i.candidate_name)",
	)
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list interviews")
	}
	defer rows.Close()

	var results []*interview.Interview
	for rows.Next() {
		row, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainInterview(row))
	}
	return results, rows.Err()
}

func (repos *InterviewRepository) Count(ctx context.Context, params *interview.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildInterviewFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM interviews i", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count interviews")
	}
	return count, nil
}

func scanInterview(row pgx.Row) (*models.Interview, error) {
	var out models.Interview
	if err := row.Scan(
		&out.ID,
		&out.CandidateName,
		&out.CandidateEmail,
		&out.RoleID,
		&out.RoleName,
		&out.InterviewDate,
		&out.Interviewer,
		&out.Outcome,
		&out.Notes,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func buildInterviewFilters(params *interview.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = append(where, fmt.Sprintf("(i.candidate_name ILIKE $%d OR i.candidate_email ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+q+"%")
	}
	if outcome := strings.TrimSpace(params.Outcome); outcome != "" {
		where = append(where, fmt.Sprintf("lower(i.outcome) = lower($%d)", len(args)+1))
		args = append(args, outcome)
	}
	if params.From != nil {
		where = append(where, fmt.Sprintf("i.interview_date >= $%d", len(args)+1))
		args = append(args, *params.From)
	}
	if params.To != nil {
		where = append(where, fmt.Sprintf("i.interview_date <= $%d", len(args)+1))
		args = append(args, *params.To)
	}
	return where, args
}
