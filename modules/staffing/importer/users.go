package importer

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// defaultPassword backs user rows whose sheet omits one; operators rotate it
// on first login.
const defaultPassword = "changeme"

// UsersImporter loads application users plus the app-role permission matrix.
// App roles synthesize from either sheet; permission flag pairs upsert so a
// re-import converges the matrix.
type UsersImporter struct{}

func (ui *UsersImporter) Import(ctx context.Context, store Store, payload Payload, w *Warnings) error {
	appRoles, err := loadLookup(ctx, store, "app_roles", "name")
	if err != nil {
		return err
	}
	users, err := loadLookup(ctx, store, "users", "email")
	if err != nil {
		return err
	}

	var roleRows [][]any
	permissions := map[string][]any{}
	var permissionOrder []string

	for _, row := range payload.Sheet("permissions") {
		roleName := row.String(colAppRole)
		if roleName == "" {
			w.Addf("permissions: row %d: missing app role; row skipped", row.Line)
			continue
		}
		page := NormalizeKey(row.String(colPage))
		if page == "" {
			w.Addf("permissions: row %d: missing page for role %q; row skipped", row.Line, roleName)
			continue
		}
		roleID, created := appRoles.GetOrCreate(roleName)
		if created {
			roleRows = append(roleRows, []any{roleID, roleName})
		}
		key := roleID.String() + "|" + page
		if _, dup := permissions[key]; !dup {
			permissionOrder = append(permissionOrder, key)
		}
		permissions[key] = []any{roleID, page, row.Flag(colCanView), row.Flag(colCanEdit)}
	}

	var userRows [][]any
	for _, row := range payload.Sheet("users") {
		email := row.String(colEmail)
		if email == "" {
			w.Addf("users: row %d: missing email; row skipped", row.Line)
			continue
		}
		var roleID any
		if raw := row.String(colAppRole); raw != "" {
			id, created := appRoles.GetOrCreate(raw)
			if created {
				roleRows = append(roleRows, []any{id, raw})
			}
			roleID = id
		}
		id, created := users.GetOrCreate(email)
		if !created {
			continue
		}
		password := row.String(colPassword)
		if password == "" {
			password = defaultPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		userRows = append(userRows, []any{
			id,
			email,
			row.First(colUserName, colName),
			string(hash),
			roleID,
		})
	}

	if err := store.BulkInsert(ctx, "app_roles",
		[]string{"id", "name"},
		roleRows,
		"ON CONFLICT (lower(name)) DO NOTHING",
	); err != nil {
		return err
	}
	if err := store.BulkInsert(ctx, "users",
		[]string{"id", "email", "name", "password_hash", "app_role_id"},
		userRows,
		"ON CONFLICT (lower(email)) DO NOTHING",
	); err != nil {
		return err
	}

	permissionRows := make([][]any, 0, len(permissionOrder))
	for _, key := range permissionOrder {
		permissionRows = append(permissionRows, permissions[key])
	}
	return store.BulkInsert(ctx, "page_permissions",
		[]string{"app_role_id", "page", "can_view", "can_edit"},
		permissionRows,
		"ON CONFLICT (app_role_id, page) DO UPDATE SET can_view = EXCLUDED.can_view, can_edit = EXCLUDED.can_edit",
	)
}
