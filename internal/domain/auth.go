package domain

// Identity is the per-request snapshot of the authenticated caller. It is
// resolved from the bearer token on every request and never persisted.
type Identity struct {
	UserID   int64
	Role     Role
	TeamID   *int64
	FullName string
	Email    string
}

// InTeam reports whether the identity belongs to the given team.
func (id Identity) InTeam(teamID int64) bool {
	return id.TeamID != nil && *id.TeamID == teamID
}
