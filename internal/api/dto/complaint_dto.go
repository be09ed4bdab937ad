package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Product     string                   `json:"product"`
	Subproduct  *string                  `json:"subproduct,omitempty"`
	Issue       string                   `json:"issue"`
	Subissue    *string                  `json:"subissue,omitempty"`
	Description string                   `json:"description"`
	Severity    domain.ComplaintSeverity `json:"severity"`
}

// UpdateComplaintRequest payload; absent fields are left untouched.
type UpdateComplaintRequest struct {
	Status         *domain.ComplaintStatus   `json:"status,omitempty"`
	Severity       *domain.ComplaintSeverity `json:"severity,omitempty"`
	Description    *string                   `json:"description,omitempty"`
	AssignedTeamID *int64                    `json:"assigned_team_id,omitempty"`
	AssignedToID   *int64                    `json:"assigned_to_id,omitempty"`
}

// AssignComplaintRequest payload.
type AssignComplaintRequest struct {
	AssigneeID int64 `json:"assignee_id"`
}

// ComplaintResponse is the full complaint representation.
type ComplaintResponse struct {
	ID              int64                    `json:"id"`
	ComplaintNumber string                   `json:"complaint_number"`
	Product         string                   `json:"product"`
	Subproduct      *string                  `json:"subproduct,omitempty"`
	Issue           string                   `json:"issue"`
	Subissue        *string                  `json:"subissue,omitempty"`
	Description     string                   `json:"description"`
	Severity        domain.ComplaintSeverity `json:"severity"`
	Status          domain.ComplaintStatus   `json:"status"`
	CustomerID      int64                    `json:"customer_id"`
	AssignedTeamID  *int64                   `json:"assigned_team_id"`
	AssignedToID    *int64                   `json:"assigned_to_id"`
	SLAHours        int                      `json:"sla_hours"`
	SLABreach       bool                     `json:"sla_breach"`
	ResolutionTime  *time.Time               `json:"resolution_time"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:              c.ID,
		ComplaintNumber: c.ComplaintNumber,
		Product:         c.Product,
		Subproduct:      c.Subproduct,
		Issue:           c.Issue,
		Subissue:        c.Subissue,
		Description:     c.Description,
		Severity:        c.Severity,
		Status:          c.Status,
		CustomerID:      c.CustomerID,
		AssignedTeamID:  c.AssignedTeamID,
		AssignedToID:    c.AssignedToID,
		SLAHours:        c.SLAHours,
		SLABreach:       c.SLABreach,
		ResolutionTime:  c.ResolutionTime,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// NewComplaintList maps a slice of domain complaints.
func NewComplaintList(complaints []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		out = append(out, NewComplaintResponse(&complaints[i]))
	}
	return out
}

// AddNoteRequest payload.
type AddNoteRequest struct {
	Note       string `json:"note"`
	IsInternal bool   `json:"is_internal"`
}

// NoteResponse represents a complaint note.
type NoteResponse struct {
	ID          int64     `json:"id"`
	ComplaintID int64     `json:"complaint_id"`
	UserID      int64     `json:"user_id"`
	Note        string    `json:"note"`
	IsInternal  bool      `json:"is_internal"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNoteResponse maps a domain note.
func NewNoteResponse(n *domain.ComplaintNote) NoteResponse {
	return NoteResponse{
		ID:          n.ID,
		ComplaintID: n.ComplaintID,
		UserID:      n.UserID,
		Note:        n.Note,
		IsInternal:  n.IsInternal,
		CreatedAt:   n.CreatedAt,
	}
}

// AddAttachmentRequest registers uploaded-file metadata.
type AddAttachmentRequest struct {
	Filename string `json:"filename"`
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}

// AttachmentResponse represents attachment metadata.
type AttachmentResponse struct {
	ID          int64     `json:"id"`
	ComplaintID int64     `json:"complaint_id"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAttachmentResponse maps a domain attachment.
func NewAttachmentResponse(a *domain.ComplaintAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		ComplaintID: a.ComplaintID,
		Filename:    a.Filename,
		FilePath:    a.FilePath,
		FileSize:    a.FileSize,
		MimeType:    a.MimeType,
		CreatedAt:   a.CreatedAt,
	}
}

// HistoryResponse represents one audit-trail entry.
type HistoryResponse struct {
	ID          int64     `json:"id"`
	ComplaintID int64     `json:"complaint_id"`
	UserID      int64     `json:"user_id"`
	Action      string    `json:"action"`
	OldValue    *string   `json:"old_value"`
	NewValue    *string   `json:"new_value"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewHistoryResponse maps a domain history entry.
func NewHistoryResponse(h *domain.ComplaintHistory) HistoryResponse {
	return HistoryResponse{
		ID:          h.ID,
		ComplaintID: h.ComplaintID,
		UserID:      h.UserID,
		Action:      h.Action,
		OldValue:    h.OldValue,
		NewValue:    h.NewValue,
		Notes:       h.Notes,
		CreatedAt:   h.CreatedAt,
	}
}
