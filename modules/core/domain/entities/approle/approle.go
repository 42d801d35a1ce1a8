package approle

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("app role not found")

// AppRole groups users for page-permission purposes. Roles and their
// permission matrix are written by the users import.
type AppRole struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// PagePermission is one row of the permission matrix: what a role may do on
// a page.
type PagePermission struct {
	AppRoleID uuid.UUID
	Page      string
	CanView   bool
	CanEdit   bool
}

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*AppRole, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AppRole, error)
	Permissions(ctx context.Context, roleID uuid.UUID) ([]*PagePermission, error)
}
