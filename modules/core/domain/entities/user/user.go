package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

// User is an application account. Accounts enter the system through the
// users import; the API exposes them read-only, so the password hash never
// leaves the persistence layer.
type User struct {
	ID          uuid.UUID
	Email       string
	Name        string
	AppRoleID   *uuid.UUID
	AppRoleName *string
	CreatedAt   time.Time
}

type FindParams struct {
	Q         string
	AppRoleID *uuid.UUID
	Limit     int
	Offset    int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*User, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
