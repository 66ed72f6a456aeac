package enums

import "fmt"

// AdminRole represents a back-office staff role.
type AdminRole string

const (
	AdminRoleModerator  AdminRole = "moderator"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

var validAdminRoles = []AdminRole{
	AdminRoleModerator,
	AdminRoleAdmin,
	AdminRoleSuperAdmin,
}

var adminRoleRanks = map[AdminRole]int{
	AdminRoleModerator:  1,
	AdminRoleAdmin:      2,
	AdminRoleSuperAdmin: 3,
}

// String implements fmt.Stringer.
func (r AdminRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known AdminRole.
func (r AdminRole) IsValid() bool {
	_, ok := adminRoleRanks[r]
	return ok
}

// Rank returns the role's position in the moderator < admin < super_admin
// hierarchy; unknown roles rank zero.
func (r AdminRole) Rank() int {
	return adminRoleRanks[r]
}

// AtLeast reports whether the role meets or exceeds the required role.
func (r AdminRole) AtLeast(required AdminRole) bool {
	return r.Rank() >= required.Rank() && r.IsValid()
}

// ParseAdminRole converts raw input into an AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	for _, candidate := range validAdminRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}
