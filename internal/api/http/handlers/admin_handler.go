package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AdminHandler exposes team administration, the SLA matrix and the automation
// placeholder.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// CreateTeam handles POST /admin/teams.
func (h *AdminHandler) CreateTeam(c *fiber.Ctx) error {
	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	team, err := h.admin.CreateTeam(c.UserContext(), service.TeamInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		TeamLeadID:  req.TeamLeadID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTeamResponse(team)})
}

// ListTeams handles GET /admin/teams.
func (h *AdminHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.admin.ListTeams(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTeamList(teams)})
}

// UpdateTeam handles PUT /admin/teams/:id.
func (h *AdminHandler) UpdateTeam(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	team, err := h.admin.UpdateTeam(c.UserContext(), id, service.TeamInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		TeamLeadID:  req.TeamLeadID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTeamResponse(team)})
}

// CreateSLARule handles POST /admin/sla-matrix.
func (h *AdminHandler) CreateSLARule(c *fiber.Ctx) error {
	var req dto.SLARuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	rule, err := h.admin.CreateSLARule(c.UserContext(), service.SLARuleInput{
		Product:    req.Product,
		Subproduct: req.Subproduct,
		Issue:      req.Issue,
		Subissue:   req.Subissue,
		Severity:   req.Severity,
		SLAHours:   req.SLAHours,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSLARuleResponse(rule)})
}

// ListSLARules handles GET /admin/sla-matrix.
func (h *AdminHandler) ListSLARules(c *fiber.Ctx) error {
	rules, err := h.admin.ListSLARules(c.UserContext(), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSLARuleList(rules)})
}

// UpdateSLARule handles PUT /admin/sla-matrix/:id.
func (h *AdminHandler) UpdateSLARule(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SLARuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	rule, err := h.admin.UpdateSLARule(c.UserContext(), id, service.SLARuleInput{
		Product:    req.Product,
		Subproduct: req.Subproduct,
		Issue:      req.Issue,
		Subissue:   req.Subissue,
		Severity:   req.Severity,
		SLAHours:   req.SLAHours,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSLARuleResponse(rule)})
}

// AgentAction handles POST /admin/agent-action.
func (h *AdminHandler) AgentAction(c *fiber.Ctx) error {
	actions := h.admin.RunAgentAction(c.UserContext())
	return c.JSON(fiber.Map{"data": fiber.Map{"actions": actions}})
}
