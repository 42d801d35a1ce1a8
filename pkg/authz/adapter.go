package authz

import (
	"context"

	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	permissionPolicyQuery = `
		SELECT ar.name, pp.page, pp.can_view, pp.can_edit
		FROM page_permissions pp
		JOIN app_roles ar ON ar.id = pp.app_role_id
		ORDER BY lower(ar.name), pp.page`

	roleGroupingQuery = `
		SELECT u.email, ar.name
		FROM users u
		JOIN app_roles ar ON ar.id = u.app_role_id
		ORDER BY lower(u.email)`
)

// Adapter feeds casbin from the imported permission tables: one p-line per
// granted page flag, one g-line per user with an app role. It is read-only;
// the import pipeline is the sole writer of the underlying tables.
type Adapter struct {
	pool *pgxpool.Pool
}

func NewAdapter(pool *pgxpool.Pool) *Adapter {
	return &Adapter{pool: pool}
}

func (a *Adapter) LoadPolicy(m model.Model) error {
	ctx := context.Background()
	if err := a.loadPermissions(ctx, m); err != nil {
		return err
	}
	return a.loadGroupings(ctx, m)
}

func (a *Adapter) loadPermissions(ctx context.Context, m model.Model) error {
	rows, err := a.pool.Query(ctx, permissionPolicyQuery)
	if err != nil {
		return errors.Wrap(err, "load page permissions")
	}
	defer rows.Close()

	for rows.Next() {
		var role, page string
		var canView, canEdit bool
		if err := rows.Scan(&role, &page, &canView, &canEdit); err != nil {
			return errors.Wrap(err, "scan page permission")
		}
		subject := SubjectForRole(role)
		if canView {
			if err := persist.LoadPolicyArray([]string{"p", subject, page, ActionView}, m); err != nil {
				return errors.Wrap(err, "register view policy")
			}
		}
		if canEdit {
			if err := persist.LoadPolicyArray([]string{"p", subject, page, ActionEdit}, m); err != nil {
				return errors.Wrap(err, "register edit policy")
			}
		}
	}
	return rows.Err()
}

func (a *Adapter) loadGroupings(ctx context.Context, m model.Model) error {
	rows, err := a.pool.Query(ctx, roleGroupingQuery)
	if err != nil {
		return errors.Wrap(err, "load user roles")
	}
	defer rows.Close()

	for rows.Next() {
		var email, role string
		if err := rows.Scan(&email, &role); err != nil {
			return errors.Wrap(err, "scan user role")
		}
		if err := persist.LoadPolicyArray([]string{"g", SubjectForEmail(email), SubjectForRole(role)}, m); err != nil {
			return errors.Wrap(err, "register role grouping")
		}
	}
	return rows.Err()
}

func (a *Adapter) SavePolicy(model.Model) error {
	return errors.New("authz: adapter is read-only")
}

func (a *Adapter) AddPolicy(string, string, []string) error {
	return errors.New("authz: adapter is read-only")
}

func (a *Adapter) RemovePolicy(string, string, []string) error {
	return errors.New("authz: adapter is read-only")
}

func (a *Adapter) RemoveFilteredPolicy(string, string, int, ...string) error {
	return errors.New("authz: adapter is read-only")
}
