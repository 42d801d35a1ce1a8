package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/planhive/planhive/modules/audit/domain/entities/importlog"
)

type fakeImportLogRepository struct {
	logs       []*importlog.ImportLog
	lastParams *importlog.FindParams
}

func (f *fakeImportLogRepository) Create(_ context.Context, log *importlog.ImportLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeImportLogRepository) List(_ context.Context, params *importlog.FindParams) ([]*importlog.ImportLog, error) {
	f.lastParams = params
	return f.logs, nil
}

func (f *fakeImportLogRepository) Count(_ context.Context, _ *importlog.FindParams) (int64, error) {
	return int64(len(f.logs)), nil
}

func (f *fakeImportLogRepository) GetByID(_ context.Context, id uuid.UUID) (*importlog.ImportLog, error) {
	for _, log := range f.logs {
		if log.ID == id {
			return log, nil
		}
	}
	return nil, importlog.ErrNotFound
}

func TestAuditServiceRecordImportNormalizesType(t *testing.T) {
	repo := &fakeImportLogRepository{}
	svc := NewAuditService(repo)

	err := svc.RecordImport(context.Background(), &importlog.ImportLog{
		EventID:    uuid.New(),
		Type:       "  Staffing ",
		Warnings:   2,
		FinishedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Len(t, repo.logs, 1)
	require.Equal(t, "staffing", repo.logs[0].Type)
}

func TestAuditServiceImportHistory(t *testing.T) {
	repo := &fakeImportLogRepository{logs: []*importlog.ImportLog{
		{ID: uuid.New(), Type: "core"},
		{ID: uuid.New(), Type: "users"},
	}}
	svc := NewAuditService(repo)

	items, total, err := svc.ImportHistory(context.Background(), &importlog.FindParams{Type: "core"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.EqualValues(t, 2, total)
	require.Equal(t, "core", repo.lastParams.Type)
}
