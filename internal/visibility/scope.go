// Package visibility decides which complaint rows a caller may see. The
// per-role policy is a single closed switch so the whole access matrix can be
// audited in one place.
package visibility

import "github.com/spec-kit/complaint-service/internal/domain"

// Scope restricts a complaint query to the rows a caller may read. Exactly one
// shape is populated per role; repositories translate it into SQL predicates.
type Scope struct {
	// None forces an empty result regardless of other fields.
	None bool
	// Unrestricted disables row filtering (admin).
	Unrestricted bool
	// CustomerID limits rows to complaints created by this customer.
	CustomerID *int64
	// AssignedToID limits rows to complaints assigned to this user.
	AssignedToID *int64
	// TeamID limits rows to complaints assigned to this team. Combined with
	// AssignedToID the two are OR-ed (ops member default view).
	TeamID *int64
	// TeamIDs limits rows to complaints assigned to any of these teams
	// (manager view).
	TeamIDs []int64
}

// ForList returns the row scope for list and stats queries.
//
// managedTeamIDs is only consulted for managers; a manager with no managed
// teams gets the empty set, not an unfiltered view.
func ForList(id domain.Identity, assignedToMe bool, managedTeamIDs []int64) Scope {
	switch id.Role {
	case domain.RoleCustomer:
		customerID := id.UserID
		return Scope{CustomerID: &customerID}
	case domain.RoleOpsMember:
		userID := id.UserID
		if assignedToMe {
			return Scope{AssignedToID: &userID}
		}
		return Scope{TeamID: id.TeamID, AssignedToID: &userID}
	case domain.RoleTeamLead:
		if id.TeamID == nil {
			return Scope{None: true}
		}
		return Scope{TeamID: id.TeamID}
	case domain.RoleManager:
		if len(managedTeamIDs) == 0 {
			return Scope{None: true}
		}
		return Scope{TeamIDs: managedTeamIDs}
	case domain.RoleAdmin:
		return Scope{Unrestricted: true}
	}
	return Scope{None: true}
}

// CanView reports whether the caller may read a single complaint. Managers are
// allowed through on the coarse "broadly oversee" rule; customers must own the
// complaint; ops members and team leads need a team or assignment match.
func CanView(id domain.Identity, c *domain.Complaint) bool {
	switch id.Role {
	case domain.RoleCustomer:
		return c.CustomerID == id.UserID
	case domain.RoleOpsMember, domain.RoleTeamLead:
		if c.AssignedTeamID != nil && id.InTeam(*c.AssignedTeamID) {
			return true
		}
		return c.AssignedToID != nil && *c.AssignedToID == id.UserID
	case domain.RoleManager, domain.RoleAdmin:
		return true
	}
	return false
}
