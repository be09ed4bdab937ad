package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintAssigned      EventType = "complaint_assigned"
	EventSLARuleChanged         EventType = "sla_rule_changed"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID int64       `json:"complaint_id,omitempty"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	ComplaintNumber string                   `json:"complaint_number"`
	Product         string                   `json:"product"`
	Issue           string                   `json:"issue"`
	Severity        domain.ComplaintSeverity `json:"severity"`
	SLAHours        int                      `json:"sla_hours"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}

// ComplaintAssignedPayload payload.
type ComplaintAssignedPayload struct {
	AssigneeID   int64  `json:"assignee_id"`
	AssigneeName string `json:"assignee_name"`
	TeamID       *int64 `json:"team_id,omitempty"`
}

// SLARuleChangedPayload payload.
type SLARuleChangedPayload struct {
	RuleID   int64                    `json:"rule_id"`
	Product  string                   `json:"product"`
	Issue    string                   `json:"issue"`
	Severity domain.ComplaintSeverity `json:"severity"`
	SLAHours int                      `json:"sla_hours"`
	IsActive bool                     `json:"is_active"`
}
