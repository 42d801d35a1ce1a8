package services

import (
	"context"
	"strings"

	"github.com/planhive/planhive/modules/audit/domain/entities/importlog"
)

type AuditService struct {
	repo importlog.Repository
}

func NewAuditService(repo importlog.Repository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) RecordImport(ctx context.Context, log *importlog.ImportLog) error {
	log.Type = strings.ToLower(strings.TrimSpace(log.Type))
	return s.repo.Create(ctx, log)
}

func (s *AuditService) ImportHistory(ctx context.Context, params *importlog.FindParams) ([]*importlog.ImportLog, int64, error) {
	items, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
