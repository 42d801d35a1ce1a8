package authz

import "strings"

// Mode represents the global enforcement mode.
type Mode string

const (
	ModeDisabled Mode = "disabled"
	ModeShadow   Mode = "shadow"
	ModeEnforce  Mode = "enforce"
)

func sanitizeMode(mode Mode) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case ModeDisabled:
		return ModeDisabled
	case ModeShadow:
		return ModeShadow
	case ModeEnforce:
		return ModeEnforce
	default:
		return ModeShadow
	}
}

// Actions mirror the two permission flags carried per page.
const (
	ActionView = "view"
	ActionEdit = "edit"
)

const (
	subjectUserPrefix = "user"
	subjectRolePrefix = "role"
	subjectSeparator  = ":"

	// AnonymousSubject stands in when no identity reaches the middleware.
	AnonymousSubject = "user:anonymous"
)

// Request encapsulates the parameters of one authorization decision.
type Request struct {
	Subject string
	Page    string
	Action  string
}

// NewRequest builds a Request with normalized page and action values.
func NewRequest(subject, page, action string) Request {
	return Request{
		Subject: subject,
		Page:    strings.ToLower(strings.TrimSpace(page)),
		Action:  strings.ToLower(strings.TrimSpace(action)),
	}
}

// SubjectForEmail returns the canonical subject for an authenticated user.
func SubjectForEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return AnonymousSubject
	}
	return subjectUserPrefix + subjectSeparator + email
}

// SubjectForRole returns the canonical identifier for a role-based subject.
func SubjectForRole(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "unnamed"
	}
	if strings.HasPrefix(name, subjectRolePrefix+subjectSeparator) {
		return name
	}
	return subjectRolePrefix + subjectSeparator + name
}
