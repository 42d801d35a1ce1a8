// Package viewmodels shapes staffing entities for JSON responses.
package viewmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/planhive/planhive/modules/staffing/domain/entities/client"
	"github.com/planhive/planhive/modules/staffing/domain/entities/interview"
	"github.com/planhive/planhive/modules/staffing/domain/entities/leave"
	"github.com/planhive/planhive/modules/staffing/domain/entities/project"
	"github.com/planhive/planhive/modules/staffing/domain/entities/request"
	"github.com/planhive/planhive/modules/staffing/domain/entities/resource"
	"github.com/planhive/planhive/modules/staffing/domain/entities/role"
)

type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ClientToVM(e *client.Client) Client {
	return Client{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt}
}

type Role struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func RoleToVM(e *role.Role) Role {
	return Role{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt}
}

type Resource struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            *string    `json:"email,omitempty"`
	RoleID           *uuid.UUID `json:"role_id,omitempty"`
	RoleName         *string    `json:"role_name,omitempty"`
	HireDate         *string    `json:"hire_date,omitempty"`
	ExitDate         *string    `json:"exit_date,omitempty"`
	DailyRate        *float64   `json:"daily_rate,omitempty"`
	DailyRateDisplay *string    `json:"daily_rate_display,omitempty"`
	TutorID          *uuid.UUID `json:"tutor_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ResourceToVM(e *resource.Resource) Resource {
	vm := Resource{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		RoleID:    e.RoleID,
		RoleName:  e.RoleName,
		HireDate:  dateString(e.HireDate),
		ExitDate:  dateString(e.ExitDate),
		TutorID:   e.TutorID,
		CreatedAt: e.CreatedAt,
	}
	if e.DailyRate != nil {
		amount := e.DailyRate.AsMajorUnits()
		display := e.DailyRate.Display()
		vm.DailyRate = &amount
		vm.DailyRateDisplay = &display
	}
	return vm
}

type Project struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	ClientID   *uuid.UUID `json:"client_id,omitempty"`
	ClientName *string    `json:"client_name,omitempty"`
	StartDate  *string    `json:"start_date,omitempty"`
	EndDate    *string    `json:"end_date,omitempty"`
	Billable   bool       `json:"billable"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ProjectToVM(e *project.Project) Project {
	return Project{
		ID:         e.ID,
		Name:       e.Name,
		ClientID:   e.ClientID,
		ClientName: e.ClientName,
		StartDate:  dateString(e.StartDate),
		EndDate:    dateString(e.EndDate),
		Billable:   e.Billable,
		CreatedAt:  e.CreatedAt,
	}
}

type Request struct {
	ID         uuid.UUID  `json:"id"`
	RoleID     uuid.UUID  `json:"role_id"`
	RoleName   string     `json:"role_name"`
	ClientID   *uuid.UUID `json:"client_id,omitempty"`
	ClientName *string    `json:"client_name,omitempty"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	LongTerm   bool       `json:"long_term"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func RequestToVM(e *request.Request) Request {
	return Request{
		ID:         e.ID,
		RoleID:     e.RoleID,
		RoleName:   e.RoleName,
		ClientID:   e.ClientID,
		ClientName: e.ClientName,
		StartDate:  e.StartDate.Format(time.DateOnly),
		EndDate:    e.EndDate.Format(time.DateOnly),
		LongTerm:   e.LongTerm,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}

type Interview struct {
	ID             uuid.UUID  `json:"id"`
	CandidateName  string     `json:"candidate_name"`
	CandidateEmail string     `json:"candidate_email"`
	RoleID         *uuid.UUID `json:"role_id,omitempty"`
	RoleName       *string    `json:"role_name,omitempty"`
	InterviewDate  string     `json:"interview_date"`
	Interviewer    *string    `json:"interviewer,omitempty"`
	Outcome        *string    `json:"outcome,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func InterviewToVM(e *interview.Interview) Interview {
	return Interview{
		ID:             e.ID,
		CandidateName:  e.CandidateName,
		CandidateEmail: e.CandidateEmail,
		RoleID:         e.RoleID,
		RoleName:       e.RoleName,
		InterviewDate:  e.InterviewDate.Format(time.DateOnly),
		Interviewer:    e.Interviewer,
		Outcome:        e.Outcome,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
	}
}

type Leave struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Kind         string    `json:"kind"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

func LeaveToVM(e *leave.Leave) Leave {
	return Leave{
		ID:           e.ID,
		ResourceID:   e.ResourceID,
		ResourceName: e.ResourceName,
		StartDate:    e.StartDate.Format(time.DateOnly),
		EndDate:      e.EndDate.Format(time.DateOnly),
		Kind:         e.Kind,
		Approved:     e.Approved,
		CreatedAt:    e.CreatedAt,
	}
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
