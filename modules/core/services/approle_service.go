package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/core/domain/entities/approle"
)

type AppRoleService struct {
	repo approle.Repository
}

func NewAppRoleService(repo approle.Repository) *AppRoleService {
	return &AppRoleService{repo: repo}
}

func (s *AppRoleService) GetPaginated(ctx context.Context, params *approle.FindParams) ([]*approle.AppRole, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
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

func (s *AppRoleService) GetByID(ctx context.Context, id uuid.UUID) (*approle.AppRole, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppRoleService) Permissions(ctx context.Context, roleID uuid.UUID) ([]*approle.PagePermission, error) {
	return s.repo.Permissions(ctx, roleID)
}
