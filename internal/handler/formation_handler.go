package handler

import (
	"io"

	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
	"formations-backend/internal/middleware"
	"formations-backend/internal/service"
	"formations-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// FormationHandler handles formation-related HTTP requests
type FormationHandler struct {
	service   service.FormationService
	validator *validation.Validator
}

// NewFormationHandler creates a new FormationHandler instance
func NewFormationHandler(service service.FormationService) *FormationHandler {
	return &FormationHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateFormation handles POST /api/formations
func (h *FormationHandler) CreateFormation(c *fiber.Ctx) error {
	var req dto.CreateFormationRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", err.Error())}
	}

	if errs := h.validator.ValidateCreateFormation(&req); len(errs) > 0 {
		return errs
	}

	organizationID, _ := c.Locals(middleware.OrganizationIDKey).(string)
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	formation, err := h.service.CreateFormation(c.Context(), organizationID, userID, &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(
		dto.NewSuccessResponse(formation, "Formation created"))
}

// ListFormations handles GET /api/formations
func (h *FormationHandler) ListFormations(c *fiber.Ctx) error {
	organizationID, _ := c.Locals(middleware.OrganizationIDKey).(string)
	status := c.Query("status")

	formations, err := h.service.ListFormations(c.Context(), organizationID, status)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(formations, "Formations retrieved"))
}

// GetFormation handles GET /api/formations/:id
func (h *FormationHandler) GetFormation(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	formation, err := h.service.GetFormation(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(formation, "Formation retrieved"))
}

// UpdateFormation handles PUT /api/formations/:id
func (h *FormationHandler) UpdateFormation(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	var req dto.UpdateFormationRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", err.Error())}
	}

	if errs := h.validator.ValidateUpdateFormation(&req); len(errs) > 0 {
		return errs
	}

	formation, err := h.service.UpdateFormation(c.Context(), id, &req)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(formation, "Formation updated"))
}

// DeleteFormation handles DELETE /api/formations/:id
func (h *FormationHandler) DeleteFormation(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	if err := h.service.DeleteFormation(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(nil, "Formation deleted"))
}

// UploadFile handles POST /api/formations/:id/upload. The file arrives as
// multipart field "file" and is buffered fully in memory; the Fiber body
// limit caps the size before this handler runs.
func (h *FormationHandler) UploadFile(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if errs := h.validator.ValidateUpload(fileHeader.Filename, contentType, fileHeader.Size); len(errs) > 0 {
		return errs
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}

	formation, err := h.service.UploadFormationFile(c.Context(), id, fileHeader.Filename, contentType, data)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(formation, "File uploaded"))
}
