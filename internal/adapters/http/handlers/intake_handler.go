package handlers

import (
	"errors"
	"fmt"

	"tradelink-backend/internal/core/domain"
	"tradelink-backend/internal/core/services"
	"tradelink-backend/internal/pkg/response"
	"tradelink-backend/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// IntakeHandler handles the public application submission endpoint
type IntakeHandler struct {
	intakeService *services.IntakeService
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intakeService *services.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

// Submit handles a public trade application submission
// @Summary Submit trade application
// @Description Validate, rate-limit and persist a new trade application
// @Tags Intake
// @Accept json
// @Produce json
// @Param body body validator.IntakeForm true "Application data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /applications [post]
func (h *IntakeHandler) Submit(c *fiber.Ctx) error {
	var form validator.IntakeForm
	if err := c.BodyParser(&form); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	meta := services.RequestMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
		Referrer:  c.Get("Referer"),
	}

	id, err := h.intakeService.Submit(c.Context(), &form, meta)
	if err != nil {
		var fieldErrs validator.Errors
		switch {
		case errors.As(err, &fieldErrs):
			return response.ValidationFailed(c, fieldErrs)
		case errors.Is(err, domain.ErrRateLimited):
			hours := int(h.intakeService.Window().Hours())
			return response.TooManyRequests(c, "Too many applications",
				fmt.Sprintf("You have reached the submission limit. Please try again after %d hours.", hours))
		default:
			return response.InternalServerError(c, "Failed to submit application")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"applicationId": id,
	})
}
