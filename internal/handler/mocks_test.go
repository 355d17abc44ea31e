package handler_test

import (
	"context"
	"encoding/json"

	"formations-backend/internal/dto"
	"formations-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// --- Manual Mocks ---

// MockFormationService
type MockFormationService struct {
	CreateFormationFunc     func(ctx context.Context, organizationID, createdBy string, req *dto.CreateFormationRequest) (*dto.FormationResponse, error)
	GetFormationFunc        func(ctx context.Context, id string) (*dto.FormationDetailResponse, error)
	ListFormationsFunc      func(ctx context.Context, organizationID string, status string) (*dto.ListFormationsResponse, error)
	UpdateFormationFunc     func(ctx context.Context, id string, req *dto.UpdateFormationRequest) (*dto.FormationResponse, error)
	DeleteFormationFunc     func(ctx context.Context, id string) error
	UploadFormationFileFunc func(ctx context.Context, id, fileName, contentType string, data []byte) (*dto.FormationResponse, error)
}

func (m *MockFormationService) CreateFormation(ctx context.Context, organizationID, createdBy string, req *dto.CreateFormationRequest) (*dto.FormationResponse, error) {
	if m.CreateFormationFunc != nil {
		return m.CreateFormationFunc(ctx, organizationID, createdBy, req)
	}
	panic("MockFormationService.CreateFormationFunc not implemented")
}
func (m *MockFormationService) GetFormation(ctx context.Context, id string) (*dto.FormationDetailResponse, error) {
	if m.GetFormationFunc != nil {
		return m.GetFormationFunc(ctx, id)
	}
	panic("MockFormationService.GetFormationFunc not implemented")
}
func (m *MockFormationService) ListFormations(ctx context.Context, organizationID string, status string) (*dto.ListFormationsResponse, error) {
	if m.ListFormationsFunc != nil {
		return m.ListFormationsFunc(ctx, organizationID, status)
	}
	panic("MockFormationService.ListFormationsFunc not implemented")
}
func (m *MockFormationService) UpdateFormation(ctx context.Context, id string, req *dto.UpdateFormationRequest) (*dto.FormationResponse, error) {
	if m.UpdateFormationFunc != nil {
		return m.UpdateFormationFunc(ctx, id, req)
	}
	panic("MockFormationService.UpdateFormationFunc not implemented")
}
func (m *MockFormationService) DeleteFormation(ctx context.Context, id string) error {
	if m.DeleteFormationFunc != nil {
		return m.DeleteFormationFunc(ctx, id)
	}
	panic("MockFormationService.DeleteFormationFunc not implemented")
}
func (m *MockFormationService) UploadFormationFile(ctx context.Context, id, fileName, contentType string, data []byte) (*dto.FormationResponse, error) {
	if m.UploadFormationFileFunc != nil {
		return m.UploadFormationFileFunc(ctx, id, fileName, contentType, data)
	}
	panic("MockFormationService.UploadFormationFileFunc not implemented")
}

// MockQuizService
type MockQuizService struct {
	CreateQuizFunc     func(ctx context.Context, formationID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	GetQuizFunc        func(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	SubmitQuizFunc     func(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error)
	GetQuizResultsFunc func(ctx context.Context, userID, quizID string) (*dto.QuizResultsResponse, error)
}

func (m *MockQuizService) CreateQuiz(ctx context.Context, formationID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if m.CreateQuizFunc != nil {
		return m.CreateQuizFunc(ctx, formationID, req)
	}
	panic("MockQuizService.CreateQuizFunc not implemented")
}
func (m *MockQuizService) GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, quizID)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}
func (m *MockQuizService) SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	if m.SubmitQuizFunc != nil {
		return m.SubmitQuizFunc(ctx, userID, quizID, req)
	}
	panic("MockQuizService.SubmitQuizFunc not implemented")
}
func (m *MockQuizService) GetQuizResults(ctx context.Context, userID, quizID string) (*dto.QuizResultsResponse, error) {
	if m.GetQuizResultsFunc != nil {
		return m.GetQuizResultsFunc(ctx, userID, quizID)
	}
	panic("MockQuizService.GetQuizResultsFunc not implemented")
}

// MockProgressService
type MockProgressService struct {
	UpsertProgressFunc       func(ctx context.Context, userID, formationID string, req *dto.UpsertProgressRequest) (*dto.ProgressResponse, error)
	GetFormationProgressFunc func(ctx context.Context, userID, formationID string) (*dto.ProgressResponse, error)
	ListProgressFunc         func(ctx context.Context, userID string) (*dto.ProgressListResponse, error)
}

func (m *MockProgressService) UpsertProgress(ctx context.Context, userID, formationID string, req *dto.UpsertProgressRequest) (*dto.ProgressResponse, error) {
	if m.UpsertProgressFunc != nil {
		return m.UpsertProgressFunc(ctx, userID, formationID, req)
	}
	panic("MockProgressService.UpsertProgressFunc not implemented")
}
func (m *MockProgressService) GetFormationProgress(ctx context.Context, userID, formationID string) (*dto.ProgressResponse, error) {
	if m.GetFormationProgressFunc != nil {
		return m.GetFormationProgressFunc(ctx, userID, formationID)
	}
	panic("MockProgressService.GetFormationProgressFunc not implemented")
}
func (m *MockProgressService) ListProgress(ctx context.Context, userID string) (*dto.ProgressListResponse, error) {
	if m.ListProgressFunc != nil {
		return m.ListProgressFunc(ctx, userID)
	}
	panic("MockProgressService.ListProgressFunc not implemented")
}

// testAuthLocals injects the locals Protected would normally set.
func testAuthLocals(userID, orgID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, userID)
		c.Locals(middleware.OrganizationIDKey, orgID)
		c.Locals(middleware.RoleKey, role)
		return c.Next()
	}
}

// envelope mirrors dto.Response with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []struct {
		Code    string      `json:"code"`
		Field   string      `json:"field"`
		Message string      `json:"message"`
		Value   interface{} `json:"value,omitempty"`
	} `json:"errors"`
}
