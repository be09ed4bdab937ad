package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AdminService covers team and SLA-rule administration plus the automation
// placeholder.
type AdminService struct {
	teams      repository.TeamRepository
	slaRules   repository.SLARuleRepository
	dispatcher events.Dispatcher
}

// TeamInput describes team create/update payloads; nil fields keep the
// current value on update.
type TeamInput struct {
	Name        *string
	Description *string
	ManagerID   *int64
	TeamLeadID  *int64
	IsActive    *bool
}

// SLARuleInput describes SLA rule create/update payloads.
type SLARuleInput struct {
	Product    *string
	Subproduct *string
	Issue      *string
	Subissue   *string
	Severity   *domain.ComplaintSeverity
	SLAHours   *int
	IsActive   *bool
}

// NewAdminService constructs the service.
func NewAdminService(teams repository.TeamRepository, slaRules repository.SLARuleRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{teams: teams, slaRules: slaRules, dispatcher: dispatcher}
}

// CreateTeam registers a new team.
func (s *AdminService) CreateTeam(ctx context.Context, input TeamInput) (*domain.Team, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewValidationError("team name required", nil)
	}
	team := &domain.Team{
		Name:       strings.TrimSpace(*input.Name),
		ManagerID:  input.ManagerID,
		TeamLeadID: input.TeamLeadID,
		IsActive:   true,
	}
	if input.Description != nil {
		team.Description = *input.Description
	}
	if input.IsActive != nil {
		team.IsActive = *input.IsActive
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// ListTeams returns a page of teams.
func (s *AdminService) ListTeams(ctx context.Context, limit, offset int) ([]domain.Team, error) {
	teams, err := s.teams.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return teams, nil
}

// UpdateTeam applies partial team updates.
func (s *AdminService) UpdateTeam(ctx context.Context, teamID int64, input TeamInput) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_id": teamID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		team.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		team.Description = *input.Description
	}
	if input.ManagerID != nil {
		team.ManagerID = input.ManagerID
	}
	if input.TeamLeadID != nil {
		team.TeamLeadID = input.TeamLeadID
	}
	if input.IsActive != nil {
		team.IsActive = *input.IsActive
	}

	if err := s.teams.Update(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// CreateSLARule adds a rule to the SLA matrix.
func (s *AdminService) CreateSLARule(ctx context.Context, input SLARuleInput) (*domain.SLARule, error) {
	if input.Product == nil || input.Issue == nil || input.Severity == nil || input.SLAHours == nil {
		return nil, apperrors.NewValidationError("product, issue, severity and sla_hours required", nil)
	}
	if !input.Severity.Valid() {
		return nil, apperrors.NewValidationError("invalid severity", map[string]any{"severity": *input.Severity})
	}
	if *input.SLAHours <= 0 {
		return nil, apperrors.NewValidationError("sla_hours must be positive", nil)
	}

	rule := &domain.SLARule{
		Product:    strings.TrimSpace(*input.Product),
		Subproduct: input.Subproduct,
		Issue:      strings.TrimSpace(*input.Issue),
		Subissue:   input.Subissue,
		Severity:   *input.Severity,
		SLAHours:   *input.SLAHours,
		IsActive:   true,
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}
	if err := s.slaRules.Create(ctx, rule); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishRuleChanged(ctx, rule)
	return rule, nil
}

// ListSLARules returns a page of SLA rules.
func (s *AdminService) ListSLARules(ctx context.Context, limit, offset int) ([]domain.SLARule, error) {
	rules, err := s.slaRules.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rules, nil
}

// UpdateSLARule applies partial rule updates. Existing complaints keep the
// hours stamped at creation time.
func (s *AdminService) UpdateSLARule(ctx context.Context, ruleID int64, input SLARuleInput) (*domain.SLARule, error) {
	rule, err := s.slaRules.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SLA rule", map[string]any{"sla_id": ruleID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Product != nil {
		rule.Product = strings.TrimSpace(*input.Product)
	}
	if input.Subproduct != nil {
		rule.Subproduct = input.Subproduct
	}
	if input.Issue != nil {
		rule.Issue = strings.TrimSpace(*input.Issue)
	}
	if input.Subissue != nil {
		rule.Subissue = input.Subissue
	}
	if input.Severity != nil {
		if !input.Severity.Valid() {
			return nil, apperrors.NewValidationError("invalid severity", map[string]any{"severity": *input.Severity})
		}
		rule.Severity = *input.Severity
	}
	if input.SLAHours != nil {
		if *input.SLAHours <= 0 {
			return nil, apperrors.NewValidationError("sla_hours must be positive", nil)
		}
		rule.SLAHours = *input.SLAHours
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	if err := s.slaRules.Update(ctx, rule); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishRuleChanged(ctx, rule)
	return rule, nil
}

// agentActions is the canned output of the automation placeholder.
var agentActions = []string{
	"Auto-assigned 5 complaints based on team workload",
	"Escalated 2 overdue complaints to managers",
	"Updated SLA breach flags for 8 complaints",
	"Sent notification emails to 12 customers",
	"Generated performance reports for 3 teams",
}

// RunAgentAction is a placeholder for the automation pipeline: it reports a
// random sample of canned actions without touching any data.
func (s *AdminService) RunAgentAction(_ context.Context) []string {
	n := 2 + rand.Intn(3)
	picked := make([]string, len(agentActions))
	copy(picked, agentActions)
	rand.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked[:n]
}

func (s *AdminService) publishRuleChanged(ctx context.Context, rule *domain.SLARule) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSLARuleChanged,
		Timestamp: time.Now(),
		Payload: events.SLARuleChangedPayload{
			RuleID:   rule.ID,
			Product:  rule.Product,
			Issue:    rule.Issue,
			Severity: rule.Severity,
			SLAHours: rule.SLAHours,
			IsActive: rule.IsActive,
		},
	})
}
