package viewmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/core/domain/entities/approle"
	"github.com/planhive/planhive/modules/core/domain/entities/user"
)

type User struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	AppRoleID   *uuid.UUID `json:"app_role_id,omitempty"`
	AppRoleName *string    `json:"app_role_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func UserToVM(e *user.User) User {
	return User{
		ID:          e.ID,
		Email:       e.Email,
		Name:        e.Name,
		AppRoleID:   e.AppRoleID,
		AppRoleName: e.AppRoleName,
		CreatedAt:   e.CreatedAt,
	}
}

type AppRole struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func AppRoleToVM(e *approle.AppRole) AppRole {
	return AppRole{
		ID:        e.ID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
	}
}

type PagePermission struct {
	Page    string `json:"page"`
	CanView bool   `json:"can_view"`
	CanEdit bool   `json:"can_edit"`
}

func PagePermissionToVM(e *approle.PagePermission) PagePermission {
	return PagePermission{
		Page:    e.Page,
		CanView: e.CanView,
		CanEdit: e.CanEdit,
	}
}
