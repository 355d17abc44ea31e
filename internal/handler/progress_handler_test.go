package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
	"formations-backend/internal/handler"
	"formations-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProgressApp(svc *MockProgressService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewProgressHandler(svc)

	api := app.Group("/api", testAuthLocals("user-1", "org-1", "member"))
	api.Post("/formations/:formationId/progress", h.UpsertProgress)
	api.Get("/formations/:formationId/progress", h.GetFormationProgress)
	api.Get("/progress", h.ListProgress)
	return app
}

func TestUpsertProgress_Success(t *testing.T) {
	svc := &MockProgressService{
		UpsertProgressFunc: func(ctx context.Context, userID, formationID string, req *dto.UpsertProgressRequest) (*dto.ProgressResponse, error) {
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, validFormationID, formationID)
			return &dto.ProgressResponse{
				UserID:             userID,
				FormationID:        formationID,
				ProgressPercentage: *req.ProgressPercentage,
				Status:             req.Status,
			}, nil
		},
	}
	app := setupProgressApp(svc)

	payload := []byte(`{"progress_percentage": 40, "status": "in_progress"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/formations/"+validFormationID+"/progress", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var progress dto.ProgressResponse
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Equal(t, 40, progress.ProgressPercentage)
}

func TestUpsertProgress_MissingFieldsReturns400(t *testing.T) {
	app := setupProgressApp(&MockProgressService{})

	req := httptest.NewRequest(http.MethodPost, "/api/formations/"+validFormationID+"/progress", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Len(t, env.Errors, 2)
}

func TestUpsertProgress_FormationNotFoundReturns404(t *testing.T) {
	svc := &MockProgressService{
		UpsertProgressFunc: func(ctx context.Context, userID, formationID string, req *dto.UpsertProgressRequest) (*dto.ProgressResponse, error) {
			return nil, domain.NewFormationNotFoundError(formationID)
		},
	}
	app := setupProgressApp(svc)

	payload := []byte(`{"progress_percentage": 40, "status": "in_progress"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/formations/"+validFormationID+"/progress", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetFormationProgress_NoRowReturns404(t *testing.T) {
	svc := &MockProgressService{
		GetFormationProgressFunc: func(ctx context.Context, userID, formationID string) (*dto.ProgressResponse, error) {
			return nil, domain.NewNotFoundError("No progress recorded for this formation")
		},
	}
	app := setupProgressApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/formations/"+validFormationID+"/progress", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListProgress_ReturnsCallersRows(t *testing.T) {
	svc := &MockProgressService{
		ListProgressFunc: func(ctx context.Context, userID string) (*dto.ProgressListResponse, error) {
			assert.Equal(t, "user-1", userID)
			return &dto.ProgressListResponse{
				Progress: []dto.ProgressResponse{
					{FormationID: "f1", ProgressPercentage: 100, Status: "completed"},
				},
			}, nil
		},
	}
	app := setupProgressApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var list dto.ProgressListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Progress, 1)
}
