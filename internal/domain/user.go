package domain

import "fmt"

// Role is the closed set of actor roles. Authorization decisions switch on
// this type; free-form role strings never cross the parse boundary.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleSitter Role = "sitter"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a submitted role string onto the closed variant set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleSitter, RoleSeller, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Hash  string `db:"password_hash"`
	Role  Role   `db:"role"`
}
