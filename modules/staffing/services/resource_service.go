package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/staffing/domain/entities/resource"
)

type ResourceService struct {
	repo resource.Repository
}

func NewResourceService(repo resource.Repository) *ResourceService {
	return &ResourceService{repo: repo}
}

func (s *ResourceService) GetPaginated(ctx context.Context, params *resource.FindParams) ([]*resource.Resource, int64, error) {
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

func (s *ResourceService) GetByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ResourceService) Create(ctx context.Context, dto *resource.CreateDTO) (*resource.Resource, error) {
	entity := dto.ToEntity()
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}
