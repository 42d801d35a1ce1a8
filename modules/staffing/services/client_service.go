package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/staffing/domain/entities/client"
)

type ClientService struct {
	repo client.Repository
}

func NewClientService(repo client.Repository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) GetPaginated(ctx context.Context, params *client.FindParams) ([]*client.Client, int64, error) {
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

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, dto *client.CreateDTO) (*client.Client, error) {
	entity := dto.ToEntity()
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}
