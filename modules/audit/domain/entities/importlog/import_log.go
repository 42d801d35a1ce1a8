package importlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("import log not found")

// ImportLog records one completed import invocation: which type ran, how
// many rows it skipped and when it finished.
type ImportLog struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	Type       string
	Warnings   int
	FinishedAt time.Time
	CreatedAt  time.Time
}

type FindParams struct {
	Type   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, log *ImportLog) error
	List(ctx context.Context, params *FindParams) ([]*ImportLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ImportLog, error)
}
