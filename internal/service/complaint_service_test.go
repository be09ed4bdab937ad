package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/visibility"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// In-memory fakes over the repository interfaces.

type fakeComplaintRepo struct {
	mu         sync.Mutex
	nextID     int64
	complaints map[int64]*domain.Complaint
	numbers    map[string]bool
	collisions int // force this many unique violations before accepting
	attempts   int
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{complaints: map[int64]*domain.Complaint{}, numbers: map[string]bool{}}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "complaints_complaint_number_key"}
}

func (r *fakeComplaintRepo) Create(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++
	if r.collisions > 0 {
		r.collisions--
		return uniqueViolation()
	}
	if r.numbers[c.ComplaintNumber] {
		return uniqueViolation()
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.numbers[c.ComplaintNumber] = true
	stored := *c
	r.complaints[c.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) Update(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.complaints[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	c.UpdatedAt = time.Now()
	stored := *c
	r.complaints[c.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id int64) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c := *stored
	return &c, nil
}

func matchesScope(scope visibility.Scope, c *domain.Complaint) bool {
	switch {
	case scope.None:
		return false
	case scope.Unrestricted:
		return true
	case scope.TeamID != nil && scope.AssignedToID != nil:
		if c.AssignedTeamID != nil && *c.AssignedTeamID == *scope.TeamID {
			return true
		}
		return c.AssignedToID != nil && *c.AssignedToID == *scope.AssignedToID
	case scope.AssignedToID != nil:
		return c.AssignedToID != nil && *c.AssignedToID == *scope.AssignedToID
	case scope.TeamID != nil:
		return c.AssignedTeamID != nil && *c.AssignedTeamID == *scope.TeamID
	case scope.CustomerID != nil:
		return c.CustomerID == *scope.CustomerID
	case len(scope.TeamIDs) > 0:
		if c.AssignedTeamID == nil {
			return false
		}
		for _, id := range scope.TeamIDs {
			if *c.AssignedTeamID == id {
				return true
			}
		}
		return false
	}
	return false
}

func (r *fakeComplaintRepo) ListWithFilter(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Complaint
	for _, stored := range r.complaints {
		if !matchesScope(filter.Scope, stored) {
			continue
		}
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		if filter.Severity != nil && stored.Severity != *filter.Severity {
			continue
		}
		if filter.TeamID != nil && (stored.AssignedTeamID == nil || *stored.AssignedTeamID != *filter.TeamID) {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *fakeComplaintRepo) Stats(_ context.Context, scope visibility.Scope) (*repository.DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats repository.DashboardStats
	for _, c := range r.complaints {
		if !matchesScope(scope, c) {
			continue
		}
		stats.Total++
		switch c.Status {
		case domain.ComplaintStatusOpen:
			stats.Open++
		case domain.ComplaintStatusInProcess:
			stats.InProcess++
		case domain.ComplaintStatusPending:
			stats.Pending++
		case domain.ComplaintStatusClosed:
			stats.Closed++
		}
		if c.SLABreach {
			stats.SLABreached++
		}
	}
	return &stats, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error { return nil }
func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, id int64) error       { return nil }
func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) { return nil, nil }
func (r *fakeUserRepo) ListByTeam(_ context.Context, _ int64) ([]domain.User, error) {
	return nil, nil
}

type fakeTeamRepo struct {
	managed map[int64][]int64
}

func (r *fakeTeamRepo) Create(_ context.Context, _ *domain.Team) error { return nil }
func (r *fakeTeamRepo) Update(_ context.Context, _ *domain.Team) error { return nil }
func (r *fakeTeamRepo) GetByID(_ context.Context, _ int64) (*domain.Team, error) {
	return nil, pgx.ErrNoRows
}
func (r *fakeTeamRepo) List(_ context.Context, _, _ int) ([]domain.Team, error) { return nil, nil }
func (r *fakeTeamRepo) ListManagedIDs(_ context.Context, managerID int64) ([]int64, error) {
	return r.managed[managerID], nil
}

type fakeSLARuleRepo struct {
	rules []domain.SLARule
}

func (r *fakeSLARuleRepo) Create(_ context.Context, _ *domain.SLARule) error { return nil }
func (r *fakeSLARuleRepo) Update(_ context.Context, _ *domain.SLARule) error { return nil }
func (r *fakeSLARuleRepo) GetByID(_ context.Context, _ int64) (*domain.SLARule, error) {
	return nil, pgx.ErrNoRows
}
func (r *fakeSLARuleRepo) List(_ context.Context, _, _ int) ([]domain.SLARule, error) {
	return r.rules, nil
}
func (r *fakeSLARuleRepo) ListActive(_ context.Context) ([]domain.SLARule, error) {
	var active []domain.SLARule
	for _, rule := range r.rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	return active, nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.ComplaintHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.ComplaintHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = int64(len(r.entries) + 1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByComplaint(_ context.Context, complaintID int64) ([]domain.ComplaintHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ComplaintHistory
	for _, e := range r.entries {
		if e.ComplaintID == complaintID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeHistoryRepo) byAction(complaintID int64, action string) []domain.ComplaintHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ComplaintHistory
	for _, e := range r.entries {
		if e.ComplaintID == complaintID && e.Action == action {
			result = append(result, e)
		}
	}
	return result
}

type fakeNoteRepo struct {
	notes []domain.ComplaintNote
}

func (r *fakeNoteRepo) Create(_ context.Context, note *domain.ComplaintNote) error {
	note.ID = int64(len(r.notes) + 1)
	note.CreatedAt = time.Now()
	r.notes = append(r.notes, *note)
	return nil
}

func (r *fakeNoteRepo) ListByComplaint(_ context.Context, complaintID int64) ([]domain.ComplaintNote, error) {
	var result []domain.ComplaintNote
	for _, n := range r.notes {
		if n.ComplaintID == complaintID {
			result = append(result, n)
		}
	}
	return result, nil
}

type fakeAttachmentRepo struct {
	attachments []domain.ComplaintAttachment
}

func (r *fakeAttachmentRepo) Create(_ context.Context, attachment *domain.ComplaintAttachment) error {
	attachment.ID = int64(len(r.attachments) + 1)
	attachment.CreatedAt = time.Now()
	r.attachments = append(r.attachments, *attachment)
	return nil
}

func (r *fakeAttachmentRepo) ListByComplaint(_ context.Context, complaintID int64) ([]domain.ComplaintAttachment, error) {
	var result []domain.ComplaintAttachment
	for _, a := range r.attachments {
		if a.ComplaintID == complaintID {
			result = append(result, a)
		}
	}
	return result, nil
}

type fixture struct {
	service    *ComplaintService
	complaints *fakeComplaintRepo
	users      *fakeUserRepo
	teams      *fakeTeamRepo
	slaRules   *fakeSLARuleRepo
	history    *fakeHistoryRepo
}

func newFixture() *fixture {
	complaints := newFakeComplaintRepo()
	users := &fakeUserRepo{users: map[int64]*domain.User{}}
	teams := &fakeTeamRepo{managed: map[int64][]int64{}}
	rules := &fakeSLARuleRepo{}
	history := &fakeHistoryRepo{}
	svc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo:  complaints,
		UserRepo:       users,
		TeamRepo:       teams,
		SLARuleRepo:    rules,
		HistoryRepo:    history,
		NoteRepo:       &fakeNoteRepo{},
		AttachmentRepo: &fakeAttachmentRepo{},
	})
	return &fixture{service: svc, complaints: complaints, users: users, teams: teams, slaRules: rules, history: history}
}

func ptr64(v int64) *int64 { return &v }

func customer(id int64) domain.Identity {
	return domain.Identity{UserID: id, Role: domain.RoleCustomer}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	return apperrors.ToDomainError(err).Code
}

func TestCreateComplaintWithMatchingRule(t *testing.T) {
	f := newFixture()
	f.slaRules.rules = []domain.SLARule{{
		ID:       1,
		Product:  "Online Banking",
		Issue:    "Login Problem",
		Severity: domain.SeverityCritical,
		SLAHours: 1,
		IsActive: true,
	}}

	complaint, err := f.service.CreateComplaint(context.Background(), customer(7), ComplaintCreateInput{
		Product:     "Online Banking",
		Issue:       "Login Problem",
		Description: "Cannot log in since yesterday",
		Severity:    domain.SeverityCritical,
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if complaint.SLAHours != 1 {
		t.Fatalf("SLAHours = %d, want 1 from matching rule", complaint.SLAHours)
	}
	if complaint.Status != domain.ComplaintStatusOpen {
		t.Fatalf("Status = %s, want open", complaint.Status)
	}
	if complaint.CustomerID != 7 {
		t.Fatalf("CustomerID = %d, want caller id 7", complaint.CustomerID)
	}

	wantPrefix := "CMP" + time.Now().Format("20060102")
	if !strings.HasPrefix(complaint.ComplaintNumber, wantPrefix) || len(complaint.ComplaintNumber) != len(wantPrefix)+8 {
		t.Fatalf("ComplaintNumber = %q, want %s + 8 random chars", complaint.ComplaintNumber, wantPrefix)
	}

	created := f.history.byAction(complaint.ID, domain.HistoryActionCreated)
	if len(created) != 1 {
		t.Fatalf("got %d Created audit entries, want 1", len(created))
	}
}

func TestCreateComplaintFallsBackToDefaults(t *testing.T) {
	f := newFixture()
	complaint, err := f.service.CreateComplaint(context.Background(), customer(1), ComplaintCreateInput{
		Product:     "Cards",
		Issue:       "Fraud",
		Description: "Unknown transaction on statement",
		Severity:    domain.SeverityLow,
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if complaint.SLAHours != 48 {
		t.Fatalf("SLAHours = %d, want default 48 for low", complaint.SLAHours)
	}
}

func TestCreateComplaintRejectsInvalidInput(t *testing.T) {
	f := newFixture()
	_, err := f.service.CreateComplaint(context.Background(), customer(1), ComplaintCreateInput{
		Product:     "Cards",
		Issue:       "Fraud",
		Description: "x",
		Severity:    domain.ComplaintSeverity("extreme"),
	})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %s, want VALIDATION_FAILED", code)
	}

	_, err = f.service.CreateComplaint(context.Background(), customer(1), ComplaintCreateInput{
		Product:  "Cards",
		Severity: domain.SeverityLow,
	})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %s, want VALIDATION_FAILED", code)
	}
}

func TestCreateComplaintRetriesOnNumberCollision(t *testing.T) {
	f := newFixture()
	f.complaints.collisions = 2

	if _, err := f.service.CreateComplaint(context.Background(), customer(1), ComplaintCreateInput{
		Product:     "Loans",
		Issue:       "Delay",
		Description: "No response for two weeks",
		Severity:    domain.SeverityMedium,
	}); err != nil {
		t.Fatalf("collision must be retried, got: %v", err)
	}
	if f.complaints.attempts != 3 {
		t.Fatalf("attempts = %d, want 3 (two collisions then success)", f.complaints.attempts)
	}
}

func TestCreateComplaintGivesUpAfterRetryCap(t *testing.T) {
	f := newFixture()
	f.complaints.collisions = maxNumberAttempts

	_, err := f.service.CreateComplaint(context.Background(), customer(1), ComplaintCreateInput{
		Product:     "Loans",
		Issue:       "Delay",
		Description: "No response",
		Severity:    domain.SeverityMedium,
	})
	if code := errCode(t, err); code != "CONFLICT" {
		t.Fatalf("code = %s, want CONFLICT after exhausting retries", code)
	}
}

func TestConcurrentCreationYieldsDistinctNumbers(t *testing.T) {
	f := newFixture()
	const n = 25

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateComplaint(context.Background(), customer(1), ComplaintCreateInput{
				Product:     "Online Banking",
				Issue:       "Transfer Failed",
				Description: "Transfer stuck in processing",
				Severity:    domain.SeverityHigh,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent create failed: %v", err)
		}
	}

	seen := map[string]bool{}
	for _, c := range f.complaints.complaints {
		if seen[c.ComplaintNumber] {
			t.Fatalf("duplicate complaint number %q", c.ComplaintNumber)
		}
		seen[c.ComplaintNumber] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d distinct numbers, want %d", len(seen), n)
	}
}

func seedComplaint(t *testing.T, f *fixture, customerID int64) *domain.Complaint {
	t.Helper()
	complaint, err := f.service.CreateComplaint(context.Background(), customer(customerID), ComplaintCreateInput{
		Product:     "Online Banking",
		Issue:       "Login Problem",
		Description: "Cannot log in",
		Severity:    domain.SeverityHigh,
	})
	if err != nil {
		t.Fatalf("seed complaint: %v", err)
	}
	return complaint
}

func TestUpdateStatusToClosedSetsResolutionTime(t *testing.T) {
	f := newFixture()
	complaint := seedComplaint(t, f, 7)
	ops := domain.Identity{UserID: 3, Role: domain.RoleOpsMember, TeamID: ptr64(5)}

	closed := domain.ComplaintStatusClosed
	updated, err := f.service.UpdateComplaint(context.Background(), ops, complaint.ID, ComplaintUpdateInput{Status: &closed})
	if err != nil {
		t.Fatalf("UpdateComplaint: %v", err)
	}
	if updated.ResolutionTime == nil {
		t.Fatalf("resolution_time must be set on close")
	}
	if entries := f.history.byAction(complaint.ID, domain.HistoryActionStatusChanged); len(entries) != 1 {
		t.Fatalf("got %d Status Changed entries, want 1", len(entries))
	}

	// Closing twice is legal; the timestamp simply refreshes.
	again, err := f.service.UpdateComplaint(context.Background(), ops, complaint.ID, ComplaintUpdateInput{Status: &closed})
	if err != nil {
		t.Fatalf("second close: %v", err)
	}
	if again.ResolutionTime == nil {
		t.Fatalf("resolution_time must stay set after second close")
	}
	// No state change on the second close, so no extra audit entry.
	if entries := f.history.byAction(complaint.ID, domain.HistoryActionStatusChanged); len(entries) != 1 {
		t.Fatalf("second close must not add another Status Changed entry")
	}
}

func TestUpdateComplaintForbiddenForCustomers(t *testing.T) {
	f := newFixture()
	complaint := seedComplaint(t, f, 7)

	pending := domain.ComplaintStatusPending
	_, err := f.service.UpdateComplaint(context.Background(), customer(7), complaint.ID, ComplaintUpdateInput{Status: &pending})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("code = %s, want FORBIDDEN", code)
	}
}

func TestAssignComplaint(t *testing.T) {
	f := newFixture()
	complaint := seedComplaint(t, f, 7)
	f.users.users[3] = &domain.User{ID: 3, FullName: "Amina Yusupova", Role: domain.RoleOpsMember, IsActive: true, TeamID: ptr64(9)}
	lead := domain.Identity{UserID: 2, Role: domain.RoleTeamLead, TeamID: ptr64(1)}

	updated, err := f.service.AssignComplaint(context.Background(), lead, complaint.ID, 3)
	if err != nil {
		t.Fatalf("AssignComplaint: %v", err)
	}
	if updated.AssignedToID == nil || *updated.AssignedToID != 3 {
		t.Fatalf("AssignedToID = %v, want 3", updated.AssignedToID)
	}
	// The complaint follows the assignee into their team.
	if updated.AssignedTeamID == nil || *updated.AssignedTeamID != 9 {
		t.Fatalf("AssignedTeamID = %v, want assignee team 9", updated.AssignedTeamID)
	}
	if updated.Status != domain.ComplaintStatusInProcess {
		t.Fatalf("Status = %s, want inprocess", updated.Status)
	}

	entries := f.history.byAction(complaint.ID, domain.HistoryActionAssigned)
	if len(entries) != 1 {
		t.Fatalf("got %d Assigned entries, want 1", len(entries))
	}
	if entries[0].NewValue == nil || *entries[0].NewValue != "Amina Yusupova" {
		t.Fatalf("Assigned entry new_value = %v, want assignee name", entries[0].NewValue)
	}
}

func TestAssignComplaintErrors(t *testing.T) {
	f := newFixture()
	complaint := seedComplaint(t, f, 7)
	lead := domain.Identity{UserID: 2, Role: domain.RoleTeamLead, TeamID: ptr64(1)}

	_, err := f.service.AssignComplaint(context.Background(), lead, complaint.ID, 999)
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("unknown assignee: code = %s, want NOT_FOUND", code)
	}

	ops := domain.Identity{UserID: 3, Role: domain.RoleOpsMember, TeamID: ptr64(1)}
	_, err = f.service.AssignComplaint(context.Background(), ops, complaint.ID, 3)
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("ops member assigning: code = %s, want FORBIDDEN", code)
	}

	_, err = f.service.AssignComplaint(context.Background(), lead, 424242, 3)
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("unknown complaint: code = %s, want NOT_FOUND", code)
	}
}

func TestGetComplaintDistinguishesForbiddenFromNotFound(t *testing.T) {
	f := newFixture()
	complaint := seedComplaint(t, f, 7)

	if _, err := f.service.GetComplaint(context.Background(), customer(7), complaint.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	_, err := f.service.GetComplaint(context.Background(), customer(8), complaint.ID)
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("foreign customer: code = %s, want FORBIDDEN", code)
	}

	_, err = f.service.GetComplaint(context.Background(), customer(8), 424242)
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("unknown id: code = %s, want NOT_FOUND", code)
	}
}

func TestListComplaintsScopedByRole(t *testing.T) {
	f := newFixture()
	mine := seedComplaint(t, f, 7)
	seedComplaint(t, f, 8)

	got, err := f.service.ListComplaints(context.Background(), customer(7), ComplaintListFilter{})
	if err != nil {
		t.Fatalf("ListComplaints: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("customer 7 sees %d complaints, want only their own", len(got))
	}

	// Assign one complaint into team 9 and check the team lead view.
	f.users.users[3] = &domain.User{ID: 3, FullName: "Ops Three", Role: domain.RoleOpsMember, IsActive: true, TeamID: ptr64(9)}
	admin := domain.Identity{UserID: 1, Role: domain.RoleAdmin}
	if _, err := f.service.AssignComplaint(context.Background(), admin, mine.ID, 3); err != nil {
		t.Fatalf("assign: %v", err)
	}

	lead := domain.Identity{UserID: 2, Role: domain.RoleTeamLead, TeamID: ptr64(9)}
	teamView, err := f.service.ListComplaints(context.Background(), lead, ComplaintListFilter{})
	if err != nil {
		t.Fatalf("ListComplaints: %v", err)
	}
	for _, c := range teamView {
		if c.AssignedTeamID == nil || *c.AssignedTeamID != 9 {
			t.Fatalf("team lead received complaint outside team 9: %+v", c)
		}
	}
	if len(teamView) != 1 {
		t.Fatalf("team lead sees %d complaints, want 1", len(teamView))
	}

	adminView, err := f.service.ListComplaints(context.Background(), admin, ComplaintListFilter{})
	if err != nil {
		t.Fatalf("ListComplaints: %v", err)
	}
	if len(adminView) != 2 {
		t.Fatalf("admin sees %d complaints, want 2", len(adminView))
	}
}

func TestManagerWithoutTeamsSeesNothing(t *testing.T) {
	f := newFixture()
	seedComplaint(t, f, 7)
	manager := domain.Identity{UserID: 4, Role: domain.RoleManager}

	got, err := f.service.ListComplaints(context.Background(), manager, ComplaintListFilter{})
	if err != nil {
		t.Fatalf("ListComplaints: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("manager with zero teams sees %d complaints, want 0", len(got))
	}

	stats, err := f.service.DashboardStats(context.Background(), manager)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("manager with zero teams stats total = %d, want 0", stats.Total)
	}
}

func TestDashboardStats(t *testing.T) {
	f := newFixture()
	first := seedComplaint(t, f, 7)
	seedComplaint(t, f, 7)
	ops := domain.Identity{UserID: 3, Role: domain.RoleOpsMember, TeamID: ptr64(5)}
	closed := domain.ComplaintStatusClosed
	if _, err := f.service.UpdateComplaint(context.Background(), ops, first.ID, ComplaintUpdateInput{Status: &closed}); err != nil {
		t.Fatalf("close: %v", err)
	}

	stats, err := f.service.DashboardStats(context.Background(), customer(7))
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.Total != 2 || stats.Open != 1 || stats.Closed != 1 {
		t.Fatalf("stats = %+v, want total 2, open 1, closed 1", stats)
	}
}

func TestNotesRequireVisibility(t *testing.T) {
	f := newFixture()
	complaint := seedComplaint(t, f, 7)

	if _, err := f.service.AddNote(context.Background(), customer(7), complaint.ID, "please hurry", false); err != nil {
		t.Fatalf("owner note: %v", err)
	}
	_, err := f.service.AddNote(context.Background(), customer(8), complaint.ID, "sneaky", false)
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("foreign note: code = %s, want FORBIDDEN", code)
	}

	notes, err := f.service.ListNotes(context.Background(), customer(7), complaint.ID)
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
}
