package domain

import "time"

// Role enumerates caller roles.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleOpsMember Role = "ops_member"
	RoleTeamLead  Role = "team_lead"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleOpsMember, RoleTeamLead, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for every account: customers, ops staff, leads,
// managers and admins share one table distinguished by Role.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	TeamID       *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
