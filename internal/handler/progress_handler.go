package handler

import (
	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
	"formations-backend/internal/middleware"
	"formations-backend/internal/service"
	"formations-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler handles user progress HTTP requests
type ProgressHandler struct {
	service   service.ProgressService
	validator *validation.Validator
}

// NewProgressHandler creates a new ProgressHandler instance
func NewProgressHandler(service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// UpsertProgress handles POST /api/formations/:formationId/progress
func (h *ProgressHandler) UpsertProgress(c *fiber.Ctx) error {
	formationID := c.Params("formationId")
	if errs := h.validator.ValidateID("formationId", formationID); len(errs) > 0 {
		return errs
	}

	var req dto.UpsertProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", err.Error())}
	}

	if errs := h.validator.ValidateUpsertProgress(&req); len(errs) > 0 {
		return errs
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)

	progress, err := h.service.UpsertProgress(c.Context(), userID, formationID, &req)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(progress, "Progress updated"))
}

// GetFormationProgress handles GET /api/formations/:formationId/progress
func (h *ProgressHandler) GetFormationProgress(c *fiber.Ctx) error {
	formationID := c.Params("formationId")
	if errs := h.validator.ValidateID("formationId", formationID); len(errs) > 0 {
		return errs
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)

	progress, err := h.service.GetFormationProgress(c.Context(), userID, formationID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(progress, "Progress retrieved"))
}

// ListProgress handles GET /api/progress
func (h *ProgressHandler) ListProgress(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	progress, err := h.service.ListProgress(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(progress, "Progress list retrieved"))
}
