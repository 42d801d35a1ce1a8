package authz

import (
	"context"
	"testing"

	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	"github.com/stretchr/testify/require"

	"github.com/planhive/planhive/pkg/serrors"
)

type staticAdapter struct {
	lines [][]string
}

func (a *staticAdapter) LoadPolicy(m model.Model) error {
	for _, rule := range a.lines {
		if err := persist.LoadPolicyArray(rule, m); err != nil {
			return err
		}
	}
	return nil
}

func (a *staticAdapter) SavePolicy(model.Model) error                              { return nil }
func (a *staticAdapter) AddPolicy(string, string, []string) error                  { return nil }
func (a *staticAdapter) RemovePolicy(string, string, []string) error               { return nil }
func (a *staticAdapter) RemoveFilteredPolicy(string, string, int, ...string) error { return nil }

func testAdapter() *staticAdapter {
	return &staticAdapter{lines: [][]string{
		{"p", "role:admin", "staffing", "view"},
		{"p", "role:admin", "staffing", "edit"},
		{"p", "role:viewer", "staffing", "view"},
		{"g", "user:ada@example.com", "role:admin"},
		{"g", "user:grace@example.com", "role:viewer"},
	}}
}

func TestServiceAuthorize(t *testing.T) {
	svc := NewService(Config{Mode: ModeEnforce}, testAdapter())
	req := NewRequest(SubjectForEmail("Ada@Example.com"), "staffing", ActionEdit)
	require.NoError(t, svc.Authorize(context.Background(), req))
}

func TestServiceAuthorizeDenied(t *testing.T) {
	svc := NewService(Config{Mode: ModeEnforce}, testAdapter())
	req := NewRequest(SubjectForEmail("grace@example.com"), "staffing", ActionEdit)

	err := svc.Authorize(context.Background(), req)
	require.Error(t, err)

	var base *serrors.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, ErrorCodeForbidden, base.Code)
}

func TestServiceAuthorizeShadowMode(t *testing.T) {
	svc := NewService(Config{Mode: ModeShadow}, testAdapter())
	req := NewRequest(SubjectForEmail("grace@example.com"), "staffing", ActionEdit)
	require.NoError(t, svc.Authorize(context.Background(), req))
}

func TestServiceAuthorizeDisabledSkipsPolicyLoad(t *testing.T) {
	svc := NewService(Config{Mode: ModeDisabled}, nil)
	req := NewRequest(AnonymousSubject, "staffing", ActionEdit)
	require.NoError(t, svc.Authorize(context.Background(), req))
}

func TestServiceAnonymousDenied(t *testing.T) {
	svc := NewService(Config{Mode: ModeEnforce}, testAdapter())
	req := NewRequest(SubjectForEmail(""), "staffing", ActionView)
	require.Error(t, svc.Authorize(context.Background(), req))
}

func TestServiceReloadPicksUpNewGrants(t *testing.T) {
	adapter := testAdapter()
	svc := NewService(Config{Mode: ModeEnforce}, adapter)
	req := NewRequest(SubjectForEmail("grace@example.com"), "staffing", ActionEdit)
	require.Error(t, svc.Authorize(context.Background(), req))

	adapter.lines = append(adapter.lines, []string{"p", "role:viewer", "staffing", "edit"})
	require.NoError(t, svc.Reload(context.Background()))
	require.NoError(t, svc.Authorize(context.Background(), req))
}

func TestServiceModeSanitized(t *testing.T) {
	svc := NewService(Config{Mode: Mode("bogus")}, testAdapter())
	require.Equal(t, ModeShadow, svc.Mode())
}
