package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/staffing/domain/entities/project"
)

type ProjectService struct {
	repo project.Repository
}

func NewProjectService(repo project.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) GetPaginated(ctx context.Context, params *project.FindParams) ([]*project.Project, int64, error) {
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

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, dto *project.CreateDTO) (*project.Project, error) {
	entity := dto.ToEntity()
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}
