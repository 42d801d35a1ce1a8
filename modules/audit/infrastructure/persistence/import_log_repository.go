package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/planhive/planhive/modules/audit/domain/entities/importlog"
	"github.com/planhive/planhive/modules/audit/infrastructure/persistence/models"
	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/repo"
)

const importLogSelect = `
	SELECT id, event_id, import_type, warnings, finished_at, created_at
	FROM import_logs`

type ImportLogRepository struct{}

func NewImportLogRepository() importlog.Repository {
	return &ImportLogRepository{}
}

// Create is idempotent on event_id: outbox dispatch is at-least-once, so a
// redelivered completion event must not produce a second row.
func (repos *ImportLogRepository) Create(ctx context.Context, log *importlog.ImportLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO import_logs (id, event_id, import_type, warnings, finished_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id) DO NOTHING`,
		log.ID, log.EventID, log.Type, log.Warnings, log.FinishedAt,
	)
	if err != nil {
		return errors.Wrap(err, "create import log")
	}
	return nil
}

func (repos *ImportLogRepository) List(ctx context.Context, params *importlog.FindParams) ([]*importlog.ImportLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := buildImportLogFilters(params)
	query := repo.Join(importLogSelect, repo.JoinWhere(where...), "ORDER BY finished_at DESC, created_at DESC")
	if params != nil {
		query = repo.Join(query, repo.FormatLimitOffset(params.Limit, params.Offset))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list import logs")
	}
	defer rows.Close()

	var results []*importlog.ImportLog
	for rows.Next() {
		row, err := scanImportLog(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainImportLog(row))
	}
	return results, rows.Err()
}

func (repos *ImportLogRepository) Count(ctx context.Context, params *importlog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildImportLogFilters(params)
	var count int64
	if err := tx.QueryRow(ctx,
		repo.Join("SELECT COUNT(*) FROM import_logs", repo.JoinWhere(where...)),
		args...,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count import logs")
	}
	return count, nil
}

func (repos *ImportLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*importlog.ImportLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row, err := scanImportLog(tx.QueryRow(ctx, repo.Join(importLogSelect, "WHERE id = $1"), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, importlog.ErrNotFound
		}
		return nil, errors.Wrap(err, "get import log")
	}
	return toDomainImportLog(row), nil
}

func scanImportLog(row pgx.Row) (*models.ImportLog, error) {
	var m models.ImportLog
	if err := row.Scan(
		&m.ID,
		&m.EventID,
		&m.Type,
		&m.Warnings,
		&m.FinishedAt,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func toDomainImportLog(row *models.ImportLog) *importlog.ImportLog {
	return &importlog.ImportLog{
		ID:         row.ID,
		EventID:    row.EventID,
		Type:       row.Type,
		Warnings:   row.Warnings,
		FinishedAt: row.FinishedAt,
		CreatedAt:  row.CreatedAt,
	}
}

func buildImportLogFilters(params *importlog.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params == nil {
		return where, args
	}
	if t := strings.TrimSpace(params.Type); t != "" {
		where = append(where, fmt.Sprintf("import_type = $%d", len(args)+1))
		args = append(args, strings.ToLower(t))
	}
	if params.From != nil {
		where = append(where, fmt.Sprintf("finished_at >= $%d", len(args)+1))
		args = append(args, *params.From)
	}
	if params.To != nil {
		where = append(where, fmt.Sprintf("finished_at <= $%d", len(args)+1))
		args = append(args, *params.To)
	}
	return where, args
}
