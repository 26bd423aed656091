package domain

import "time"

// Role controls what a user may do with tasks owned by others.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Role         Role      `json:"role"`
	RegisteredOn time.Time `json:"registered_on"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
