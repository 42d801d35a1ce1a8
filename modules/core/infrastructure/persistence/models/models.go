package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID
	Email       string
	Name        string
	AppRoleID   *uuid.UUID
	AppRoleName *string
	CreatedAt   time.Time
}

type AppRole struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type PagePermission struct {
	AppRoleID uuid.UUID
	Page      string
	CanView   bool
	CanEdit   bool
}
