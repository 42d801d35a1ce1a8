package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("client not found")

type Client struct {
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
	List(ctx context.Context, params *FindParams) ([]*Client, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	Create(ctx context.Context, c *Client) error
}
