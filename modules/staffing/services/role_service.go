package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/staffing/domain/entities/role"
)

type RoleService struct {
	repo role.Repository
}

func NewRoleService(repo role.Repository) *RoleService {
	return &RoleService{repo: repo}
}

func (s *RoleService) GetPaginated(ctx context.Context, params *role.FindParams) ([]*role.Role, int64, error) {
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

func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*role.Role, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoleService) Create(ctx context.Context, dto *role.CreateDTO) (*role.Role, error) {
	entity := dto.ToEntity()
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}
