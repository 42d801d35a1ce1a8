package project

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/planhive/planhive/pkg/constants"
	"github.com/planhive/planhive/pkg/intl"
	"github.com/planhive/planhive/pkg/serrors"
)

type CreateDTO struct {
	Name      string     `json:"name" validate:"required"`
	ClientID  *uuid.UUID `json:"client_id"`
	StartDate string     `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string     `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Billable  bool       `json:"billable"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)
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

func (d *CreateDTO) ToEntity() *Project {
	p := &Project{
		ID:       uuid.New(),
		Name:     d.Name,
		ClientID: d.ClientID,
		Billable: d.Billable,
	}
	if t, err := time.Parse(time.DateOnly, d.StartDate); err == nil && d.StartDate != "" {
		p.StartDate = &t
	}
	if t, err := time.Parse(time.DateOnly, d.EndDate); err == nil && d.EndDate != "" {
		p.EndDate = &t
	}
	return p
}
