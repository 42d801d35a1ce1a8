package persistence

import (
	"github.com/planhive/planhive/modules/core/domain/entities/approle"
	"github.com/planhive/planhive/modules/core/domain/entities/user"
	"github.com/planhive/planhive/modules/core/infrastructure/persistence/models"
)

func toDomainUser(row *models.User) *user.User {
	return &user.User{
		ID:          row.ID,
		Email:       row.Email,
		Name:        row.Name,
		AppRoleID:   row.AppRoleID,
		AppRoleName: row.AppRoleName,
		CreatedAt:   row.CreatedAt,
	}
}

func toDomainAppRole(row *models.AppRole) *approle.AppRole {
	return &approle.AppRole{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func toDomainPagePermission(row *models.PagePermission) *approle.PagePermission {
	return &approle.PagePermission{
		AppRoleID: row.AppRoleID,
		Page:      row.Page,
		CanView:   row.CanView,
		CanEdit:   row.CanEdit,
	}
}
