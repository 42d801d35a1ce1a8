package resource

import (
	"context"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("resource not found")

type Resource struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	RoleID    *uuid.UUID
	RoleName  *string
	HireDate  *time.Time
	ExitDate  *time.Time
	DailyRate *money.Money
	TutorID   *uuid.UUID
	CreatedAt time.Time
}

type FindParams struct {
	Q      string
	RoleID *uuid.UUID
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Resource, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Resource, error)
	Create(ctx context.Context, r *Resource) error
}
