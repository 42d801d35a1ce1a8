package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Leave struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	StartDate    time.Time
	EndDate      time.Time
	Kind         string
	Approved     bool
	CreatedAt    time.Time
}

type FindParams struct {
	ResourceID *uuid.UUID
	Approved   *bool
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Leave, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
}
