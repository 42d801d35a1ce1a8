package viewmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/audit/domain/entities/importlog"
)

type ImportLog struct {
	ID         uuid.UUID `json:"id"`
	EventID    uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	Warnings   int       `json:"warnings"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func ImportLogToVM(e *importlog.ImportLog) ImportLog {
	return ImportLog{
		ID:         e.ID,
		EventID:    e.EventID,
		Type:       e.Type,
		Warnings:   e.Warnings,
		FinishedAt: e.FinishedAt,
		CreatedAt:  e.CreatedAt,
	}
}
