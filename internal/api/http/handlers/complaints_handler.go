package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintsHandler exposes the complaint lifecycle endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaints *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints}
}

func callerIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized("authentication required")
	}
	return identity, nil
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{name: c.Params(name)})
	}
	return id, nil
}

// Create handles POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.complaints.CreateComplaint(c.UserContext(), identity, service.ComplaintCreateInput{
		Product:     req.Product,
		Subproduct:  req.Subproduct,
		Issue:       req.Issue,
		Subissue:    req.Subissue,
		Description: req.Description,
		Severity:    req.Severity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// List handles GET /complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	filter := service.ComplaintListFilter{
		AssignedToMe: c.QueryBool("assigned_to_me"),
		Limit:        c.QueryInt("limit", 50),
		Offset:       c.QueryInt("offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ComplaintStatus(raw)
		if !status.Valid() {
			return apperrors.NewValidationError("invalid status", map[string]any{"status": raw})
		}
		filter.Status = &status
	}
	if raw := c.Query("severity"); raw != "" {
		severity := domain.ComplaintSeverity(raw)
		if !severity.Valid() {
			return apperrors.NewValidationError("invalid severity", map[string]any{"severity": raw})
		}
		filter.Severity = &severity
	}
	if raw := c.Query("team_id"); raw != "" {
		teamID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid team_id", map[string]any{"team_id": raw})
		}
		filter.TeamID = &teamID
	}

	complaints, err := h.complaints.ListComplaints(c.UserContext(), identity, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintList(complaints)})
}

// Get handles GET /complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	complaint, err := h.complaints.GetComplaint(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Update handles PUT /complaints/:id.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.complaints.UpdateComplaint(c.UserContext(), identity, id, service.ComplaintUpdateInput{
		Status:         req.Status,
		Severity:       req.Severity,
		Description:    req.Description,
		AssignedTeamID: req.AssignedTeamID,
		AssignedToID:   req.AssignedToID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Assign handles POST /complaints/:id/assign.
func (h *ComplaintsHandler) Assign(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssigneeID <= 0 {
		return apperrors.NewValidationError("assignee_id required", nil)
	}

	complaint, err := h.complaints.AssignComplaint(c.UserContext(), identity, id, req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Stats handles GET /complaints/stats/dashboard.
func (h *ComplaintsHandler) Stats(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	stats, err := h.complaints.DashboardStats(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// AddNote handles POST /complaints/:id/notes.
func (h *ComplaintsHandler) AddNote(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	note, err := h.complaints.AddNote(c.UserContext(), identity, id, req.Note, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewNoteResponse(note)})
}

// ListNotes handles GET /complaints/:id/notes.
func (h *ComplaintsHandler) ListNotes(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	notes, err := h.complaints.ListNotes(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, dto.NewNoteResponse(&notes[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// AddAttachment handles POST /complaints/:id/attachments.
func (h *ComplaintsHandler) AddAttachment(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AddAttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	attachment, err := h.complaints.AddAttachment(c.UserContext(), identity, id, service.AttachmentInput{
		Filename: req.Filename,
		FilePath: req.FilePath,
		FileSize: req.FileSize,
		MimeType: req.MimeType,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAttachmentResponse(attachment)})
}

// ListAttachments handles GET /complaints/:id/attachments.
func (h *ComplaintsHandler) ListAttachments(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	attachments, err := h.complaints.ListAttachments(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	out := make([]dto.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		out = append(out, dto.NewAttachmentResponse(&attachments[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ListHistory handles GET /complaints/:id/history.
func (h *ComplaintsHandler) ListHistory(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.complaints.ListHistory(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	out := make([]dto.HistoryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.NewHistoryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}
