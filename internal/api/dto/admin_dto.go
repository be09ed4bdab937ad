package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// TeamRequest payload for create and update; absent fields keep their value.
type TeamRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ManagerID   *int64  `json:"manager_id,omitempty"`
	TeamLeadID  *int64  `json:"team_lead_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// TeamResponse representation.
type TeamResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ManagerID   *int64    `json:"manager_id"`
	TeamLeadID  *int64    `json:"team_lead_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTeamResponse maps a domain team.
func NewTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ManagerID:   t.ManagerID,
		TeamLeadID:  t.TeamLeadID,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

// NewTeamList maps a slice of domain teams.
func NewTeamList(teams []domain.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, NewTeamResponse(&teams[i]))
	}
	return out
}

// SLARuleRequest payload for create and update; absent fields keep their value.
type SLARuleRequest struct {
	Product    *string                   `json:"product,omitempty"`
	Subproduct *string                   `json:"subproduct,omitempty"`
	Issue      *string                   `json:"issue,omitempty"`
	Subissue   *string                   `json:"subissue,omitempty"`
	Severity   *domain.ComplaintSeverity `json:"severity,omitempty"`
	SLAHours   *int                      `json:"sla_hours,omitempty"`
	IsActive   *bool                     `json:"is_active,omitempty"`
}

// SLARuleResponse representation.
type SLARuleResponse struct {
	ID         int64                    `json:"id"`
	Product    string                   `json:"product"`
	Subproduct *string                  `json:"subproduct"`
	Issue      string                   `json:"issue"`
	Subissue   *string                  `json:"subissue"`
	Severity   domain.ComplaintSeverity `json:"severity"`
	SLAHours   int                      `json:"sla_hours"`
	IsActive   bool                     `json:"is_active"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// NewSLARuleResponse maps a domain rule.
func NewSLARuleResponse(r *domain.SLARule) SLARuleResponse {
	return SLARuleResponse{
		ID:         r.ID,
		Product:    r.Product,
		Subproduct: r.Subproduct,
		Issue:      r.Issue,
		Subissue:   r.Subissue,
		Severity:   r.Severity,
		SLAHours:   r.SLAHours,
		IsActive:   r.IsActive,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// NewSLARuleList maps a slice of domain rules.
func NewSLARuleList(rules []domain.SLARule) []SLARuleResponse {
	out := make([]SLARuleResponse, 0, len(rules))
	for i := range rules {
		out = append(out, NewSLARuleResponse(&rules[i]))
	}
	return out
}
