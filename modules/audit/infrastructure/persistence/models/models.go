package models

import (
	"time"

	"github.com/google/uuid"
)

type ImportLog struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	Type       string
	Warnings   int
	FinishedAt time.Time
	CreatedAt  time.Time
}
