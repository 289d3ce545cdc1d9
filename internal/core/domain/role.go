package domain

import "strings"

// Role is the canonical role of a user.
type Role string

const (
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts the exact role names only. Used for user input.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// NormalizeRole maps a stored role representation onto the canonical enum.
// Stores may hold "Manager", "MANAGER" or " manager ".
func NormalizeRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manager":
		return RoleManager, true
	case "employee":
		return RoleEmployee, true
	}
	return "", false
}

// RequireRole lets the identity through only when its role equals role.
// It never touches the store: the identity must already be resolved.
func RequireRole(id *Identity, role Role) (*Identity, error) {
	if id == nil {
		return nil, ErrUnauthenticated
	}
	if id.Role != role {
		return nil, ErrForbidden
	}
	return id, nil
}

func RequireManager(id *Identity) (*Identity, error) {
	return RequireRole(id, RoleManager)
}

func RequireEmployee(id *Identity) (*Identity, error) {
	return RequireRole(id, RoleEmployee)
}
