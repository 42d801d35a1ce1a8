package services

import (
	"context"

	"github.com/planhive/planhive/modules/staffing/domain/entities/interview"
	"github.com/planhive/planhive/modules/staffing/domain/entities/leave"
	"github.com/planhive/planhive/modules/staffing/domain/entities/request"
)

// PlanningService is the read side for imported planning data: open resource
// requests, candidate interviews and leave windows.
type PlanningService struct {
	requests   request.Repository
	interviews interview.Repository
	leaves     leave.Repository
}

func NewPlanningService(
	requests request.Repository,
	interviews interview.Repository,
	leaves leave.Repository,
) *PlanningService {
	return &PlanningService{
		requests:   requests,
		interviews: interviews,
		leaves:     leaves,
	}
}

func (s *PlanningService) Requests(ctx context.Context, params *request.FindParams) ([]*request.Request, int64, error) {
	items, err := s.requests.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.requests.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *PlanningService) Interviews(ctx context.Context, params *interview.FindParams) ([]*interview.Interview, int64, error) {
	items, err := s.interviews.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.interviews.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *PlanningService) Leaves(ctx context.Context, params *leave.FindParams) ([]*leave.Leave, int64, error) {
	items, err := s.leaves.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leaves.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
