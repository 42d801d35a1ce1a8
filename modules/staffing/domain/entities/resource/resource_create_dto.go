package resource

import (
	"context"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/planhive/planhive/pkg/constants"
	"github.com/planhive/planhive/pkg/intl"
	"github.com/planhive/planhive/pkg/serrors"
)

type CreateDTO struct {
	Name      string     `json:"name" validate:"required"`
	Email     string     `json:"email" validate:"omitempty,email"`
	RoleID    *uuid.UUID `json:"role_id"`
	HireDate  string     `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	ExitDate  string     `json:"exit_date" validate:"omitempty,datetime=2006-01-02"`
	DailyRate *float64   `json:"daily_rate" validate:"omitempty,gte=0"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.HireDate = strings.TrimSpace(d.HireDate)
	d.ExitDate = strings.TrimSpace(d.ExitDate)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	l, ok := intl.UseLocalizer(ctx)
	if !ok {
		panic(intl.ErrNoLocalizer)
	}

	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	validationErrors := make(serrors.ValidationErrors)
	for field, err := range serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors), func(field string) string {
		return "Staffing.Fields." + field
	}) {
		validationErrors[field] = err
	}
	return serrors.LocalizeValidationErrors(validationErrors, l), false
}

// ToEntity builds a Resource from validated input.
func (d *CreateDTO) ToEntity() *Resource {
	r := &Resource{
		ID:     uuid.New(),
		Name:   d.Name,
		RoleID: d.RoleID,
	}
	if d.Email != "" {
		email := d.Email
		r.Email = &email
	}
	if t, err := time.Parse(time.DateOnly, d.HireDate); err == nil && d.HireDate != "" {
		r.HireDate = &t
	}
	if t, err := time.Parse(time.DateOnly, d.ExitDate); err == nil && d.ExitDate != "" {
		r.ExitDate = &t
	}
	if d.DailyRate != nil {
		r.DailyRate = money.NewFromFloat(*d.DailyRate, money.EUR)
	}
	return r
}
