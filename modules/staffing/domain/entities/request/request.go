package request

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Request is an open resource request: a role wanted for a client over a
// date range. LongTerm is computed at import time, never supplied.
type Request struct {
	ID         uuid.UUID
	RoleID     uuid.UUID
	RoleName   string
	ClientID   *uuid.UUID
	ClientName *string
	StartDate  time.Time
	EndDate    time.Time
	LongTerm   bool
	Notes      *string
	CreatedAt  time.Time
}

type FindParams struct {
	RoleID   *uuid.UUID
	LongTerm *bool
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Request, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
}
