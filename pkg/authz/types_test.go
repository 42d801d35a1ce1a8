package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectForEmail(t *testing.T) {
	t.Run("normalizes case and spacing", func(t *testing.T) {
		assert.Equal(t, "user:ada@example.com", SubjectForEmail("  Ada@Example.COM "))
	})

	t.Run("anonymous fallback", func(t *testing.T) {
		assert.Equal(t, AnonymousSubject, SubjectForEmail(""))
		assert.Equal(t, AnonymousSubject, SubjectForEmail("   "))
	})
}

func TestSubjectForRole(t *testing.T) {
	assert.Equal(t, "role:admin", SubjectForRole(" Admin "))
	assert.Equal(t, "role:viewer", SubjectForRole("role:viewer"))
	assert.Equal(t, "role:unnamed", SubjectForRole(""))
}

func TestNewRequestNormalizes(t *testing.T) {
	req := NewRequest("user:ada@example.com", " Staffing ", " EDIT ")
	assert.Equal(t, "staffing", req.Page)
	assert.Equal(t, "edit", req.Action)
}

func TestSanitizeMode(t *testing.T) {
	assert.Equal(t, ModeEnforce, sanitizeMode(" Enforce "))
	assert.Equal(t, ModeDisabled, sanitizeMode("disabled"))
	assert.Equal(t, ModeShadow, sanitizeMode("unknown"))
}
