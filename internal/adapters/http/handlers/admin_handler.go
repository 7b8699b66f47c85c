package handlers

import (
	"errors"
	"strconv"

	"tradelink-backend/internal/core/domain"
	"tradelink-backend/internal/core/services"
	"tradelink-backend/internal/pkg/pagination"
	"tradelink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the authenticated application review endpoints
type AdminHandler struct {
	reviewService *services.ReviewService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reviewService *services.ReviewService) *AdminHandler {
	return &AdminHandler{reviewService: reviewService}
}

// List returns a page of applications with status counts
// @Summary List applications
// @Description List applications with filtering, search, sorting and pagination
// @Tags Admin
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param search query string false "Search name, email, company or description"
// @Param page query int false "Page number"
// @Param pageSize query int false "Items per page"
// @Param sortBy query string false "Sort column" Enums(createdAt, name, email, status)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} response.Response
// @Router /admin/applications [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	apps, total, stats, err := h.reviewService.List(c.Context(), services.ListInput{
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		Offset:    params.Offset,
		Limit:     params.PageSize,
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid status filter")
		}
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", fiber.Map{
		"applications": apps,
		"pagination":   pagination.GetMeta(params, total),
		"stats":        stats,
	})
}

// GetByID returns one application with its notes and email log
// @Summary Get application
// @Description Get a single application by ID
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/applications/{id} [get]
func (h *AdminHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.reviewService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to get application")
	}

	return response.Success(c, "Application retrieved successfully", app)
}

// UpdateRequest represents the update application request body
type UpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Update changes an application's status and/or appends a note
// @Summary Update application
// @Description Update an application's status and/or append a review note
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param body body UpdateRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/applications/{id} [patch]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" && req.Note == "" {
		return response.BadRequest(c, "Nothing to update")
	}

	// Status and note are applied as two independent writes. If the
	// note fails after the status change landed, the status change
	// stays.
	if req.Status != "" {
		if err := h.reviewService.UpdateStatus(c.Context(), id, req.Status); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidStatus):
				return response.BadRequest(c, "Invalid status")
			case errors.Is(err, domain.ErrApplicationNotFound):
				return response.NotFound(c, "Application not found")
			default:
				return response.InternalServerError(c, "Failed to update status")
			}
		}
	}

	if req.Note != "" {
		if err := h.reviewService.AppendNote(c.Context(), id, "admin", req.Note); err != nil {
			switch {
			case errors.Is(err, domain.ErrApplicationNotFound):
				return response.NotFound(c, "Application not found")
			case errors.Is(err, domain.ErrInvalidInput):
				return response.BadRequest(c, "Note body is required")
			default:
				return response.InternalServerError(c, "Failed to append note")
			}
		}
	}

	return response.Success(c, "Application updated successfully", nil)
}

// Delete removes an application and its history
// @Summary Delete application
// @Description Permanently delete an application with its notes and email log
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/applications/{id} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	if err := h.reviewService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to delete application")
	}

	return response.Success(c, "Application deleted successfully", nil)
}

// BulkStatusRequest represents the bulk status update request body
type BulkStatusRequest struct {
	IDs    []uint `json:"ids"`
	Status string `json:"status"`
}

// BulkUpdateStatus applies one status to many applications
// @Summary Bulk status update
// @Description Apply one status to many applications; missing IDs are skipped
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body BulkStatusRequest true "IDs and target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/applications/bulk-status [post]
func (h *AdminHandler) BulkUpdateStatus(c *fiber.Ctx) error {
	var req BulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.IDs) == 0 {
		return response.BadRequest(c, "At least one application ID is required")
	}

	modified, err := h.reviewService.BulkUpdateStatus(c.Context(), req.IDs, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid status")
		}
		return response.InternalServerError(c, "Failed to update applications")
	}

	return response.Success(c, "Applications updated successfully", fiber.Map{
		"modified": modified,
	})
}

// EmailRequest represents the custom email request body
type EmailRequest struct {
	ApplicationID uint   `json:"applicationId"`
	Template      string `json:"template"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
}

// SendEmail sends an admin-authored email to an applicant
// @Summary Send custom email
// @Description Send an email to the applicant and record it in the email log
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body EmailRequest true "Email content"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/email [post]
func (h *AdminHandler) SendEmail(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ApplicationID == 0 {
		return response.BadRequest(c, "applicationId is required")
	}

	err := h.reviewService.SendCustomEmail(c.Context(), req.ApplicationID, req.Template, req.Subject, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, domain.ErrEmptyEmailContent):
			return response.BadRequest(c, "Subject and body are required")
		case errors.Is(err, domain.ErrEmailDisabled):
			return response.Error(c, fiber.StatusServiceUnavailable, "Email delivery is not configured")
		default:
			return response.InternalServerError(c, "Failed to send email")
		}
	}

	return response.Success(c, "Email sent successfully", nil)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidInput
	}
	return uint(id), nil
}
