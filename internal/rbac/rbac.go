// Package rbac holds the static role and permission model for the
// dashboard. The role tables are process-wide constants; Validate checks
// them once at startup so a permission added to the wrong role is caught
// before it silently changes who can do what.
package rbac

import "fmt"

// Role is a staff access level.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Permission is one grantable action tag. The set is closed: tags outside
// the catalog are never granted.
type Permission string

const (
	ViewDashboard    Permission = "view_dashboard"
	ViewInventory    Permission = "view_inventory"
	ManageInventory  Permission = "manage_inventory"
	DeleteProducts   Permission = "delete_products"
	ViewOrders       Permission = "view_orders"
	ManageOrders     Permission = "manage_orders"
	DeleteOrders     Permission = "delete_orders"
	ViewCategories   Permission = "view_categories"
	ManageCategories Permission = "manage_categories"
	DeleteCategories Permission = "delete_categories"
	ViewBrands       Permission = "view_brands"
	ManageBrands     Permission = "manage_brands"
	ViewCustomers    Permission = "view_customers"
	ManageCustomers  Permission = "manage_customers"
	ViewAnalytics    Permission = "view_analytics"
	ViewSettings     Permission = "view_settings"
	ManageSettings   Permission = "manage_settings"
	ManageUsers      Permission = "manage_users"
)

// catalog is every known permission tag.
var catalog = map[Permission]struct{}{
	ViewDashboard:    {},
	ViewInventory:    {},
	ManageInventory:  {},
	DeleteProducts:   {},
	ViewOrders:       {},
	ManageOrders:     {},
	DeleteOrders:     {},
	ViewCategories:   {},
	ManageCategories: {},
	DeleteCategories: {},
	ViewBrands:       {},
	ManageBrands:     {},
	ViewCustomers:    {},
	ManageCustomers:  {},
	ViewAnalytics:    {},
	ViewSettings:     {},
	ManageSettings:   {},
	ManageUsers:      {},
}

// rolePermissions maps each role to its granted tags. Admins hold the full
// catalog; managers everything except destructive and user-admin tags;
// staff only read tags.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		ViewDashboard,
		ViewInventory, ManageInventory, DeleteProducts,
		ViewOrders, ManageOrders, DeleteOrders,
		ViewCategories, ManageCategories, DeleteCategories,
		ViewBrands, ManageBrands,
		ViewCustomers, ManageCustomers,
		ViewAnalytics,
		ViewSettings, ManageSettings,
		ManageUsers,
	},
	RoleManager: {
		ViewDashboard,
		ViewInventory, ManageInventory,
		ViewOrders, ManageOrders,
		ViewCategories, ManageCategories,
		ViewBrands, ManageBrands,
		ViewCustomers, ManageCustomers,
		ViewAnalytics,
		ViewSettings,
	},
	RoleStaff: {
		ViewDashboard,
		ViewInventory,
		ViewOrders,
		ViewCategories,
		ViewBrands,
		ViewCustomers,
		ViewAnalytics,
	},
}

// Principal is the authenticated staff member as seen by access checks.
type Principal struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// ValidRole reports whether r is a known role name.
func ValidRole(r Role) bool {
	_, ok := rolePermissions[r]
	return ok
}

// HasPermission is a pure table lookup: true iff the principal's role
// grants the tag. Nil principal and unknown tags are always denied.
func HasPermission(p *Principal, tag Permission) bool {
	if p == nil {
		return false
	}
	if _, known := catalog[tag]; !known {
		return false
	}
	for _, granted := range rolePermissions[p.Role] {
		if granted == tag {
			return true
		}
	}
	return false
}

// PermissionsForRole returns a copy of the role's grant list.
func PermissionsForRole(r Role) []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// PermissionStrings returns the role's grants as plain strings for token
// payloads and API responses.
func PermissionStrings(r Role) []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

// Validate checks the permission tables: every granted tag must exist in
// the catalog, no role may grant a tag twice, and the role hierarchy
// staff ⊆ manager ⊆ admin must hold. Run at startup; a failure means the
// tables were edited inconsistently.
func Validate() error {
	for role, perms := range rolePermissions {
		seen := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			if _, known := catalog[p]; !known {
				return fmt.Errorf("rbac: role %q grants unknown permission %q", role, p)
			}
			if _, dup := seen[p]; dup {
				return fmt.Errorf("rbac: role %q grants %q twice", role, p)
			}
			seen[p] = struct{}{}
		}
	}

	if err := requireSubset(RoleStaff, RoleManager); err != nil {
		return err
	}
	return requireSubset(RoleManager, RoleAdmin)
}

func requireSubset(lesser, greater Role) error {
	grantedToGreater := make(map[Permission]struct{})
	for _, p := range rolePermissions[greater] {
		grantedToGreater[p] = struct{}{}
	}
	for _, p := range rolePermissions[lesser] {
		if _, ok := grantedToGreater[p]; !ok {
			return fmt.Errorf("rbac: %q grants %q but %q does not; role hierarchy broken", lesser, p, greater)
		}
	}
	return nil
}
