package interview

import (
	"context"
	"time"

	"github.com/google/uuid"
)

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

type FindParams struct {
	Q       string
	Outcome string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Interview, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
}
