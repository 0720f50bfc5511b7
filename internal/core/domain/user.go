package domain

import "time"

// Role is the closed set of privilege levels a user can hold. Keeping it a
// named type (rather than a free string) makes role gates exhaustive: a typo'd
// role can never satisfy a comparison against the constants below.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User models an authenticated actor in the system. PasswordHash is excluded
// from every serialized representation.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
