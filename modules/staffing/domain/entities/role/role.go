package role

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("role not found")

type Role struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Role, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Role, error)
	Create(ctx context.Context, r *Role) error
}
