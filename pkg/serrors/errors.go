package serrors

import (
	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/planhive/planhive/pkg/constants"
)

// Error is a localizable application error.
type Error interface {
	error
	Localize(l *i18n.Localizer) string
}

// BaseError carries a stable machine code, a developer message and a locale key
// used to render the user-facing text.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return e.Message
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	e.TemplateData = data
	return e
}

func (e *BaseError) Localize(l *i18n.Localizer) string {
	if l == nil || e.LocaleKey == "" {
		return e.Message
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    e.LocaleKey,
		TemplateData: e.TemplateData,
	})
	if err != nil {
		return e.Message
	}
	return msg
}

// ValidationErrors maps a struct field name to its validation error.
type ValidationErrors map[string]Error

func NewFieldRequiredError(field, localeKey string) *BaseError {
	return NewError("FIELD_REQUIRED", field+" is required", localeKey).
		WithTemplateData(map[string]string{"Field": field})
}

// ProcessValidatorErrors converts go-playground validation failures to
// localizable errors. getFieldLocaleKey maps a struct field to the locale key
// of its display name; an empty key falls back to the raw field name.
func ProcessValidatorErrors(
	errs validator.ValidationErrors,
	getFieldLocaleKey func(field string) string,
) map[string]*BaseError {
	out := make(map[string]*BaseError, len(errs))
	for _, err := range errs {
		field := err.Field()
		localeKey := "Validation." + err.Tag()
		fieldKey := getFieldLocaleKey(field)
		e := NewError("VALIDATION_"+err.Tag(), err.Translate(constants.Translator), localeKey).
			WithTemplateData(map[string]string{
				"Field": field,
				"Param": err.Param(),
			})
		if fieldKey != "" {
			e.TemplateData["FieldKey"] = fieldKey
		}
		out[field] = e
	}
	return out
}

// LocalizeValidationErrors renders every validation error with the request
// localizer, resolving field display names through their locale keys.
func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		if be, ok := err.(*BaseError); ok {
			if fieldKey, has := be.TemplateData["FieldKey"]; has {
				if name, lerr := l.Localize(&i18n.LocalizeConfig{MessageID: fieldKey}); lerr == nil {
					be.TemplateData["Field"] = name
				}
			}
		}
		out[field] = err.Localize(l)
	}
	return out
}
