package authz

import "github.com/planhive/planhive/pkg/serrors"

const (
	// ErrorCodeForbidden is the machine code carried by denial errors.
	ErrorCodeForbidden = "AUTHZ_FORBIDDEN"
	errorLocaleKey     = "Authorization.PermissionDenied"
)

// forbiddenError builds a standardized error for denied requests.
func forbiddenError(req Request) *serrors.BaseError {
	return serrors.NewError(
		ErrorCodeForbidden,
		"permission denied",
		errorLocaleKey,
	).WithTemplateData(map[string]string{
		"page":    req.Page,
		"action":  req.Action,
		"subject": req.Subject,
	})
}
