package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/core/domain/entities/user"
)

type UserService struct {
	repo user.Repository
}

func NewUserService(repo user.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]*user.User, int64, error) {
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

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}
