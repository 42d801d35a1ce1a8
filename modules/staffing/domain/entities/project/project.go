package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("project not found")

type Project struct {
	ID         uuid.UUID
	Name       string
	ClientID   *uuid.UUID
	ClientName *string
	StartDate  *time.Time
	EndDate    *time.Time
	Billable   bool
	CreatedAt  time.Time
}

type FindParams struct {
	Q        string
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Project, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	Create(ctx context.Context, p *Project) error
}
