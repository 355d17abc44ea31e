package handler

import (
	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
	"formations-backend/internal/middleware"
	"formations-backend/internal/service"
	"formations-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz authoring, submission and result requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateQuiz handles POST /api/formations/:id/quiz
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	formationID := c.Params("id")
	if errs := h.validator.ValidateID("id", formationID); len(errs) > 0 {
		return errs
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", err.Error())}
	}

	if errs := h.validator.ValidateCreateQuiz(&req); len(errs) > 0 {
		return errs
	}

	quiz, err := h.service.CreateQuiz(c.Context(), formationID, &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(
		dto.NewSuccessResponse(quiz, "Quiz created"))
}

// GetQuiz handles GET /api/quiz/:quizId
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	if errs := h.validator.ValidateID("quizId", quizID); len(errs) > 0 {
		return errs
	}

	quiz, err := h.service.GetQuiz(c.Context(), quizID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(quiz, "Quiz retrieved"))
}

// SubmitQuiz handles POST /api/quiz/:quizId/submit
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	if errs := h.validator.ValidateID("quizId", quizID); len(errs) > 0 {
		return errs
	}

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", err.Error())}
	}

	if errs := h.validator.ValidateSubmitQuiz(&req); len(errs) > 0 {
		return errs
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)

	result, err := h.service.SubmitQuiz(c.Context(), userID, quizID, &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(
		dto.NewSuccessResponse(result, "Quiz submitted"))
}

// GetQuizResults handles GET /api/quiz/:quizId/results
func (h *QuizHandler) GetQuizResults(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	if errs := h.validator.ValidateID("quizId", quizID); len(errs) > 0 {
		return errs
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)

	results, err := h.service.GetQuizResults(c.Context(), userID, quizID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewSuccessResponse(results, "Quiz results retrieved"))
}
