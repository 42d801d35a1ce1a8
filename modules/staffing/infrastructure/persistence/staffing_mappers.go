package persistence

import (
	"github.com/Rhymond/go-money"

	"github.com/planhive/planhive/modules/staffing/domain/entities/client"
	"github.com/planhive/planhive/modules/staffing/domain/entities/interview"
	"github.com/planhive/planhive/modules/staffing/domain/entities/leave"
	"github.com/planhive/planhive/modules/staffing/domain/entities/project"
	"github.com/planhive/planhive/modules/staffing/domain/entities/request"
	"github.com/planhive/planhive/modules/staffing/domain/entities/resource"
	"github.com/planhive/planhive/modules/staffing/domain/entities/role"
	"github.com/planhive/planhive/modules/staffing/infrastructure/persistence/models"
)

func toDomainClient(row *models.Client) *client.Client {
	return &client.Client{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func toDomainRole(row *models.Role) *role.Role {
	return &role.Role{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func toDomainResource(row *models.Resource) *resource.Resource {
	out := &resource.Resource{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		RoleID:    row.RoleID,
		RoleName:  row.RoleName,
		HireDate:  row.HireDate,
		ExitDate:  row.ExitDate,
		TutorID:   row.TutorID,
		CreatedAt: row.CreatedAt,
	}
	if row.DailyRateCents != nil {
		currency := money.EUR
		if row.DailyRateCurrency != nil && *row.DailyRateCurrency != "" {
			currency = *row.DailyRateCurrency
		}
		out.DailyRate = money.New(*row.DailyRateCents, currency)
	}
	return out
}

func toDomainProject(row *models.Project) *project.Project {
	return &project.Project{
		ID:         row.ID,
		Name:       row.Name,
		ClientID:   row.ClientID,
		ClientName: row.ClientName,
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		Billable:   row.Billable,
		CreatedAt:  row.CreatedAt,
	}
}

func toDomainRequest(row *models.Request) *request.Request {
	return &request.Request{
		ID:         row.ID,
		RoleID:     row.RoleID,
		RoleName:   row.RoleName,
		ClientID:   row.ClientID,
		ClientName: row.ClientName,
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		LongTerm:   row.LongTerm,
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt,
	}
}

func toDomainInterview(row *models.Interview) *interview.Interview {
	return &interview.Interview{
		ID:             row.ID,
		CandidateName:  row.CandidateName,
		CandidateEmail: row.CandidateEmail,
		RoleID:         row.RoleID,
		RoleName:       row.RoleName,
		InterviewDate:  row.InterviewDate,
		Interviewer:    row.Interviewer,
		Outcome:        row.Outcome,
		Notes:          row.Notes,
		CreatedAt:      row.CreatedAt,
	}
}

func toDomainLeave(row *models.Leave) *leave.Leave {
	return &leave.Leave{
		ID:           row.ID,
		ResourceID:   row.ResourceID,
		ResourceName: row.ResourceName,
		StartDate:    row.StartDate,
		EndDate:      row.EndDate,
		Kind:         row.Kind,
		Approved:     row.Approved,
		CreatedAt:    row.CreatedAt,
	}
}
