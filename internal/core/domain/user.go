package domain

import "time"

// Role names form a closed set. Access-control tables enumerate these
// names explicitly; adding a role means updating every allow-list.
const (
	RoleAdmin    = "Admin"
	RoleLandlord = "Landlord"
	RoleTenant   = "Tenant"
)

// KnownRole reports whether name belongs to the fixed role set.
func KnownRole(name string) bool {
	return name == RoleAdmin || name == RoleLandlord || name == RoleTenant
}

// Role is a named permission class.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User models an authenticated actor in the system. Role is resolved from
// RoleID at read time and may be nil when the role record no longer exists.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       int       `json:"role_id"`
	Role         *Role     `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
