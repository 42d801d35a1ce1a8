package role

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/planhive/planhive/pkg/constants"
	"github.com/planhive/planhive/pkg/intl"
	"github.com/planhive/planhive/pkg/serrors"
)

type CreateDTO struct {
	Name string `json:"name" validate:"required"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
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

func (d *CreateDTO) ToEntity() *Role {
	return &Role{
		ID:   uuid.New(),
		Name: d.Name,
	}
}
