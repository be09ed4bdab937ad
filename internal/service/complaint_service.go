package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/sla"
	"github.com/spec-kit/complaint-service/internal/visibility"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// maxNumberAttempts caps complaint-number regeneration on unique violations.
const maxNumberAttempts = 5

// ComplaintService coordinates the complaint lifecycle: creation, listing,
// updates, assignment, notes and dashboard stats.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	users       repository.UserRepository
	teams       repository.TeamRepository
	slaRules    repository.SLARuleRepository
	history     repository.ComplaintHistoryRepository
	notes       repository.ComplaintNoteRepository
	attachments repository.ComplaintAttachmentRepository
	statsCache  *StatsCache
	dispatcher  events.Dispatcher
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	UserRepo       repository.UserRepository
	TeamRepo       repository.TeamRepository
	SLARuleRepo    repository.SLARuleRepository
	HistoryRepo    repository.ComplaintHistoryRepository
	NoteRepo       repository.ComplaintNoteRepository
	AttachmentRepo repository.ComplaintAttachmentRepository
	StatsCache     *StatsCache
	Dispatcher     events.Dispatcher
}

// ComplaintCreateInput describes complaint creation payload.
type ComplaintCreateInput struct {
	Product     string
	Subproduct  *string
	Issue       string
	Subissue    *string
	Description string
	Severity    domain.ComplaintSeverity
}

// ComplaintListFilter describes listing filters on top of the role scope.
type ComplaintListFilter struct {
	Status       *domain.ComplaintStatus
	Severity     *domain.ComplaintSeverity
	TeamID       *int64
	AssignedToMe bool
	Limit        int
	Offset       int
}

// ComplaintUpdateInput carries partial updates; nil fields are left untouched.
type ComplaintUpdateInput struct {
	Status         *domain.ComplaintStatus
	AssignedTeamID *int64
	AssignedToID   *int64
	Description    *string
	Severity       *domain.ComplaintSeverity
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		users:       deps.UserRepo,
		teams:       deps.TeamRepo,
		slaRules:    deps.SLARuleRepo,
		history:     deps.HistoryRepo,
		notes:       deps.NoteRepo,
		attachments: deps.AttachmentRepo,
		statsCache:  deps.StatsCache,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateComplaint files a new complaint for the caller. The SLA deadline is
// resolved from the active rule set exactly once here and never recomputed.
func (s *ComplaintService) CreateComplaint(ctx context.Context, identity domain.Identity, input ComplaintCreateInput) (*domain.Complaint, error) {
	input.Product = strings.TrimSpace(input.Product)
	input.Issue = strings.TrimSpace(input.Issue)
	input.Description = strings.TrimSpace(input.Description)
	if input.Product == "" || input.Issue == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("product, issue and description are required", nil)
	}
	if !input.Severity.Valid() {
		return nil, apperrors.NewValidationError("invalid severity", map[string]any{"severity": input.Severity})
	}

	rules, err := s.slaRules.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	complaint := &domain.Complaint{
		Product:     input.Product,
		Subproduct:  input.Subproduct,
		Issue:       input.Issue,
		Subissue:    input.Subissue,
		Description: input.Description,
		Severity:    input.Severity,
		Status:      domain.ComplaintStatusOpen,
		CustomerID:  identity.UserID,
		SLAHours:    sla.Resolve(input.Product, input.Issue, input.Severity, rules),
	}

	// Number collisions are retryable: regenerate and resubmit.
	for attempt := 0; ; attempt++ {
		complaint.ComplaintNumber = generateComplaintNumber()
		err = s.complaints.Create(ctx, complaint)
		if err == nil {
			break
		}
		if !repository.IsUniqueViolation(err) {
			return nil, apperrors.MapError(err)
		}
		if attempt+1 >= maxNumberAttempts {
			return nil, apperrors.NewConflict("could not allocate complaint number", nil)
		}
	}

	newValue := string(domain.ComplaintStatusOpen)
	note := "Complaint created"
	if err := s.history.Create(ctx, &domain.ComplaintHistory{
		ComplaintID: complaint.ID,
		UserID:      identity.UserID,
		Action:      domain.HistoryActionCreated,
		NewValue:    &newValue,
		Notes:       &note,
	}); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       actorFor(identity),
		Payload: events.ComplaintCreatedPayload{
			ComplaintNumber: complaint.ComplaintNumber,
			Product:         complaint.Product,
			Issue:           complaint.Issue,
			Severity:        complaint.Severity,
			SLAHours:        complaint.SLAHours,
		},
	})
	return complaint, nil
}

// ListComplaints returns the page of complaints visible to the caller.
func (s *ComplaintService) ListComplaints(ctx context.Context, identity domain.Identity, filter ComplaintListFilter) ([]domain.Complaint, error) {
	scope, err := s.scopeFor(ctx, identity, filter.AssignedToMe)
	if err != nil {
		return nil, err
	}
	complaints, err := s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		Scope:    scope,
		Status:   filter.Status,
		Severity: filter.Severity,
		TeamID:   filter.TeamID,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// GetComplaint fetches one complaint, distinguishing unknown ids from rows the
// caller may not read.
func (s *ComplaintService) GetComplaint(ctx context.Context, identity domain.Identity, id int64) (*domain.Complaint, error) {
	complaint, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(identity, complaint) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	return complaint, nil
}

// UpdateComplaint applies partial field updates. Closing stamps the resolution
// time; every status change is recorded in the audit trail.
func (s *ComplaintService) UpdateComplaint(ctx context.Context, identity domain.Identity, id int64, input ComplaintUpdateInput) (*domain.Complaint, error) {
	switch identity.Role {
	case domain.RoleOpsMember, domain.RoleTeamLead, domain.RoleManager, domain.RoleAdmin:
	default:
		return nil, apperrors.NewForbidden("not enough permissions")
	}

	complaint, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := complaint.Status
	statusChanged := false

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		if *input.Status == domain.ComplaintStatusClosed {
			now := time.Now().UTC()
			complaint.ResolutionTime = &now
		}
		statusChanged = *input.Status != oldStatus
		complaint.Status = *input.Status
	}
	if input.Severity != nil {
		if !input.Severity.Valid() {
			return nil, apperrors.NewValidationError("invalid severity", map[string]any{"severity": *input.Severity})
		}
		complaint.Severity = *input.Severity
	}
	if input.Description != nil {
		complaint.Description = *input.Description
	}
	if input.AssignedTeamID != nil {
		complaint.AssignedTeamID = input.AssignedTeamID
	}
	if input.AssignedToID != nil {
		complaint.AssignedToID = input.AssignedToID
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Status != nil && statusChanged {
		oldValue := string(oldStatus)
		newValue := string(complaint.Status)
		note := fmt.Sprintf("Status changed to %s", newValue)
		if err := s.history.Create(ctx, &domain.ComplaintHistory{
			ComplaintID: complaint.ID,
			UserID:      identity.UserID,
			Action:      domain.HistoryActionStatusChanged,
			OldValue:    &oldValue,
			NewValue:    &newValue,
			Notes:       &note,
		}); err != nil {
			return nil, apperrors.MapError(err)
		}
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintStatusChanged,
			ComplaintID: complaint.ID,
			Actor:       actorFor(identity),
			Payload: events.ComplaintStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: complaint.Status,
			},
		})
	}
	return complaint, nil
}

// AssignComplaint hands a complaint to a user. The complaint follows the
// assignee into their team and is forced into the inprocess state.
func (s *ComplaintService) AssignComplaint(ctx context.Context, identity domain.Identity, complaintID, assigneeID int64) (*domain.Complaint, error) {
	switch identity.Role {
	case domain.RoleTeamLead, domain.RoleManager, domain.RoleAdmin:
	default:
		return nil, apperrors.NewForbidden("not enough permissions")
	}

	complaint, err := s.fetch(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": assigneeID})
		}
		return nil, apperrors.MapError(err)
	}

	complaint.AssignedToID = &assignee.ID
	complaint.AssignedTeamID = assignee.TeamID
	complaint.Status = domain.ComplaintStatusInProcess

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	newValue := assignee.FullName
	note := fmt.Sprintf("Assigned to %s", assignee.FullName)
	if err := s.history.Create(ctx, &domain.ComplaintHistory{
		ComplaintID: complaint.ID,
		UserID:      identity.UserID,
		Action:      domain.HistoryActionAssigned,
		NewValue:    &newValue,
		Notes:       &note,
	}); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintAssigned,
		ComplaintID: complaint.ID,
		Actor:       actorFor(identity),
		Payload: events.ComplaintAssignedPayload{
			AssigneeID:   assignee.ID,
			AssigneeName: assignee.FullName,
			TeamID:       assignee.TeamID,
		},
	})
	return complaint, nil
}

// DashboardStats returns complaint counts under the caller's visibility scope,
// served from the short-TTL cache when possible.
func (s *ComplaintService) DashboardStats(ctx context.Context, identity domain.Identity) (*repository.DashboardStats, error) {
	if stats, ok := s.statsCache.Get(ctx, identity.UserID); ok {
		return stats, nil
	}
	scope, err := s.scopeFor(ctx, identity, false)
	if err != nil {
		return nil, err
	}
	stats, err := s.complaints.Stats(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.statsCache.Set(ctx, identity.UserID, stats)
	return stats, nil
}

// AddNote appends a note to a complaint the caller can read.
func (s *ComplaintService) AddNote(ctx context.Context, identity domain.Identity, complaintID int64, text string, isInternal bool) (*domain.ComplaintNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("note text required", nil)
	}
	complaint, err := s.fetch(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(identity, complaint) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	note := &domain.ComplaintNote{
		ComplaintID: complaint.ID,
		UserID:      identity.UserID,
		Note:        text,
		IsInternal:  isInternal,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, apperrors.MapError(err)
	}
	return note, nil
}

// ListNotes returns a complaint's notes under the single-read visibility rule.
func (s *ComplaintService) ListNotes(ctx context.Context, identity domain.Identity, complaintID int64) ([]domain.ComplaintNote, error) {
	complaint, err := s.fetch(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(identity, complaint) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	notes, err := s.notes.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notes, nil
}

// AttachmentInput carries uploaded-file metadata; the file body itself is
// stored outside this service.
type AttachmentInput struct {
	Filename string
	FilePath string
	FileSize int64
	MimeType string
}

// AddAttachment records attachment metadata on a complaint the caller can
// read.
func (s *ComplaintService) AddAttachment(ctx context.Context, identity domain.Identity, complaintID int64, input AttachmentInput) (*domain.ComplaintAttachment, error) {
	input.Filename = strings.TrimSpace(input.Filename)
	input.FilePath = strings.TrimSpace(input.FilePath)
	if input.Filename == "" || input.FilePath == "" {
		return nil, apperrors.NewValidationError("filename and file_path required", nil)
	}
	complaint, err := s.fetch(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(identity, complaint) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	attachment := &domain.ComplaintAttachment{
		ComplaintID: complaint.ID,
		Filename:    input.Filename,
		FilePath:    input.FilePath,
		FileSize:    input.FileSize,
		MimeType:    input.MimeType,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return attachment, nil
}

// ListAttachments returns a complaint's attachment metadata under the
// single-read visibility rule.
func (s *ComplaintService) ListAttachments(ctx context.Context, identity domain.Identity, complaintID int64) ([]domain.ComplaintAttachment, error) {
	complaint, err := s.fetch(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(identity, complaint) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	attachments, err := s.attachments.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return attachments, nil
}

// ListHistory returns a complaint's audit trail under the single-read
// visibility rule.
func (s *ComplaintService) ListHistory(ctx context.Context, identity domain.Identity, complaintID int64) ([]domain.ComplaintHistory, error) {
	complaint, err := s.fetch(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !visibility.CanView(identity, complaint) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	entries, err := s.history.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *ComplaintService) fetch(ctx context.Context, id int64) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

func (s *ComplaintService) scopeFor(ctx context.Context, identity domain.Identity, assignedToMe bool) (visibility.Scope, error) {
	var managedTeamIDs []int64
	if identity.Role == domain.RoleManager {
		ids, err := s.teams.ListManagedIDs(ctx, identity.UserID)
		if err != nil {
			return visibility.Scope{}, apperrors.MapError(err)
		}
		managedTeamIDs = ids
	}
	return visibility.ForList(identity, assignedToMe, managedTeamIDs), nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(identity domain.Identity) events.Actor {
	return events.Actor{UserID: identity.UserID, Role: identity.Role}
}

// generateComplaintNumber builds CMP + date + 8 random hex chars. Uniqueness
// under concurrent creation relies on the random suffix plus the table's
// unique constraint; collisions are handled by the retry loop above.
func generateComplaintNumber() string {
	return "CMP" + time.Now().Format("20060102") + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
