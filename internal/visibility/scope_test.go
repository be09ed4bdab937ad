package visibility

import (
	"testing"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func ptr(v int64) *int64 { return &v }

func TestForListCustomer(t *testing.T) {
	scope := ForList(domain.Identity{UserID: 7, Role: domain.RoleCustomer}, false, nil)
	if scope.CustomerID == nil || *scope.CustomerID != 7 {
		t.Fatalf("customer scope = %+v, want CustomerID=7", scope)
	}
	if scope.None || scope.Unrestricted {
		t.Fatalf("customer scope must be restricted to own rows: %+v", scope)
	}
}

func TestForListOpsMember(t *testing.T) {
	id := domain.Identity{UserID: 3, Role: domain.RoleOpsMember, TeamID: ptr(5)}

	scope := ForList(id, false, nil)
	if scope.TeamID == nil || *scope.TeamID != 5 || scope.AssignedToID == nil || *scope.AssignedToID != 3 {
		t.Fatalf("ops default scope = %+v, want team 5 OR assignee 3", scope)
	}

	mine := ForList(id, true, nil)
	if mine.AssignedToID == nil || *mine.AssignedToID != 3 || mine.TeamID != nil {
		t.Fatalf("assigned_to_me scope = %+v, want assignee 3 only", mine)
	}
}

func TestForListTeamLead(t *testing.T) {
	scope := ForList(domain.Identity{UserID: 2, Role: domain.RoleTeamLead, TeamID: ptr(9)}, false, nil)
	if scope.TeamID == nil || *scope.TeamID != 9 || scope.AssignedToID != nil {
		t.Fatalf("team lead scope = %+v, want team 9 only", scope)
	}

	noTeam := ForList(domain.Identity{UserID: 2, Role: domain.RoleTeamLead}, false, nil)
	if !noTeam.None {
		t.Fatalf("team lead without team must see nothing: %+v", noTeam)
	}
}

func TestForListManager(t *testing.T) {
	id := domain.Identity{UserID: 4, Role: domain.RoleManager}

	scope := ForList(id, false, []int64{1, 2})
	if len(scope.TeamIDs) != 2 || scope.Unrestricted {
		t.Fatalf("manager scope = %+v, want teams [1 2]", scope)
	}

	// A manager managing zero teams gets the empty set, never the full table.
	empty := ForList(id, false, nil)
	if !empty.None {
		t.Fatalf("manager with no teams must see nothing: %+v", empty)
	}
}

func TestForListAdminAndUnknown(t *testing.T) {
	admin := ForList(domain.Identity{UserID: 1, Role: domain.RoleAdmin}, false, nil)
	if !admin.Unrestricted {
		t.Fatalf("admin scope = %+v, want unrestricted", admin)
	}

	unknown := ForList(domain.Identity{UserID: 1, Role: domain.Role("intern")}, false, nil)
	if !unknown.None {
		t.Fatalf("unknown role must see nothing: %+v", unknown)
	}
}

func TestCanView(t *testing.T) {
	complaint := &domain.Complaint{ID: 10, CustomerID: 7, AssignedTeamID: ptr(5), AssignedToID: ptr(3)}

	cases := []struct {
		name string
		id   domain.Identity
		want bool
	}{
		{"owner customer", domain.Identity{UserID: 7, Role: domain.RoleCustomer}, true},
		{"foreign customer", domain.Identity{UserID: 8, Role: domain.RoleCustomer}, false},
		{"ops in team", domain.Identity{UserID: 99, Role: domain.RoleOpsMember, TeamID: ptr(5)}, true},
		{"ops assigned", domain.Identity{UserID: 3, Role: domain.RoleOpsMember, TeamID: ptr(1)}, true},
		{"ops outside", domain.Identity{UserID: 99, Role: domain.RoleOpsMember, TeamID: ptr(2)}, false},
		{"lead in team", domain.Identity{UserID: 50, Role: domain.RoleTeamLead, TeamID: ptr(5)}, true},
		{"lead outside", domain.Identity{UserID: 50, Role: domain.RoleTeamLead, TeamID: ptr(6)}, false},
		{"manager", domain.Identity{UserID: 60, Role: domain.RoleManager}, true},
		{"admin", domain.Identity{UserID: 61, Role: domain.RoleAdmin}, true},
		{"unknown role", domain.Identity{UserID: 62, Role: domain.Role("bot")}, false},
	}
	for _, tc := range cases {
		if got := CanView(tc.id, complaint); got != tc.want {
			t.Fatalf("%s: CanView = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanViewUnassignedComplaint(t *testing.T) {
	complaint := &domain.Complaint{ID: 11, CustomerID: 7}
	ops := domain.Identity{UserID: 3, Role: domain.RoleOpsMember, TeamID: ptr(5)}
	if CanView(ops, complaint) {
		t.Fatalf("ops member must not view an unassigned foreign complaint")
	}
}
