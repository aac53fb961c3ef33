package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleResearcher UserRole = "RESEARCHER"
)

// MaxAdmins is the ceiling on concurrently held ADMIN roles. It is
// enforced only at promotion time, never against loaded or pulled data.
const MaxAdmins = 10

type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`

	// Points is a non-negative accumulator bumped by point-awarding
	// mutations (course recommendation, completion, feedback).
	Points int `json:"points"`

	JoinedDate time.Time `json:"joinedDate"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
