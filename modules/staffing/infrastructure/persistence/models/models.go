package models

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Role struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Resource struct {
	ID                uuid.UUID
	Name              string
	Email             *string
	RoleID            *uuid.UUID
	RoleName          *string
	HireDate          *time.Time
	ExitDate          *time.Time
	DailyRateCents    *int64
	DailyRateCurrency *string
	TutorID           *uuid.UUID
	CreatedAt         time.Time
}

type Project struct {
	ID         uuid.UUID
	Name       string
	ClientID   *uuid.UUID
	ClientName *string
	StartDate  *time.Time
	EndDate    *time.Time
	Billable   bool
	CreatedAt  time.Time
}

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

type Interview struct {
	ID             uuid.UUID
	CandidateName  string
	CandidateEmail string
	RoleID         *uuid.UUID
	RoleName       *string
	InterviewDate  time.Time
	Interviewer    *string
	Outcome        *string
	Notes          *string
	CreatedAt      time.Time
}

type Leave struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	StartDate    time.Time
	EndDate      time.Time
	Kind         string
	Approved     bool
	CreatedAt    time.Time
}
