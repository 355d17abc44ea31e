package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
	"formations-backend/internal/handler"
	"formations-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validFormationID = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"
)

func setupFormationApp(svc *MockFormationService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewFormationHandler(svc)

	api := app.Group("/api", testAuthLocals("user-1", "org-1", "admin"))
	api.Post("/formations", h.CreateFormation)
	api.Get("/formations", h.ListFormations)
	api.Get("/formations/:id", h.GetFormation)
	api.Put("/formations/:id", h.UpdateFormation)
	api.Delete("/formations/:id", h.DeleteFormation)
	api.Post("/formations/:id/upload", h.UploadFile)
	return app
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestCreateFormation_Returns201(t *testing.T) {
	svc := &MockFormationService{
		CreateFormationFunc: func(ctx context.Context, organizationID, createdBy string, req *dto.CreateFormationRequest) (*dto.FormationResponse, error) {
			assert.Equal(t, "org-1", organizationID)
			assert.Equal(t, "user-1", createdBy)
			return &dto.FormationResponse{ID: validFormationID, Name: req.Name, Status: "draft"}, nil
		},
	}
	app := setupFormationApp(svc)

	payload, _ := json.Marshal(dto.CreateFormationRequest{Name: "Onboarding 101", Type: "video"})
	req := httptest.NewRequest(http.MethodPost, "/api/formations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	var formation dto.FormationResponse
	require.NoError(t, json.Unmarshal(env.Data, &formation))
	assert.Equal(t, "Onboarding 101", formation.Name)
}

func TestCreateFormation_ValidationFailureReturns400(t *testing.T) {
	app := setupFormationApp(&MockFormationService{})

	payload := []byte(`{"name":"","type":"webinar"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/formations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Errors)
}

func TestCreateFormation_MalformedJSONReturns400(t *testing.T) {
	app := setupFormationApp(&MockFormationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/formations", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetFormation_NotFoundReturns404(t *testing.T) {
	svc := &MockFormationService{
		GetFormationFunc: func(ctx context.Context, id string) (*dto.FormationDetailResponse, error) {
			return nil, domain.NewFormationNotFoundError(id)
		},
	}
	app := setupFormationApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/formations/"+validFormationID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
}

func TestGetFormation_MalformedIDReturns400(t *testing.T) {
	app := setupFormationApp(&MockFormationService{})

	req := httptest.NewRequest(http.MethodGet, "/api/formations/not-a-ulid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListFormations_PassesStatusQuery(t *testing.T) {
	var gotStatus string
	svc := &MockFormationService{
		ListFormationsFunc: func(ctx context.Context, organizationID string, status string) (*dto.ListFormationsResponse, error) {
			gotStatus = status
			return &dto.ListFormationsResponse{Formations: []dto.FormationResponse{}}, nil
		},
	}
	app := setupFormationApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/formations?status=active", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", gotStatus)
}

func TestUpdateFormation_Success(t *testing.T) {
	svc := &MockFormationService{
		UpdateFormationFunc: func(ctx context.Context, id string, req *dto.UpdateFormationRequest) (*dto.FormationResponse, error) {
			return &dto.FormationResponse{ID: id, Name: *req.Name}, nil
		},
	}
	app := setupFormationApp(svc)

	payload := []byte(`{"name":"Renamed"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/formations/"+validFormationID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteFormation_Success(t *testing.T) {
	deleted := false
	svc := &MockFormationService{
		DeleteFormationFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	app := setupFormationApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/formations/"+validFormationID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, deleted)
}

func buildMultipartFile(t *testing.T, fieldName, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadFile_Success(t *testing.T) {
	svc := &MockFormationService{
		UploadFormationFileFunc: func(ctx context.Context, id, fileName, contentType string, data []byte) (*dto.FormationResponse, error) {
			assert.Equal(t, "handbook.pdf", fileName)
			assert.Equal(t, "application/pdf", contentType)
			assert.Equal(t, []byte("%PDF-1.7"), data)
			return &dto.FormationResponse{ID: id, FileName: fileName}, nil
		},
	}
	app := setupFormationApp(svc)

	body, contentType := buildMultipartFile(t, "file", "handbook.pdf", "application/pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/api/formations/"+validFormationID+"/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUploadFile_DisallowedMIMEReturns400(t *testing.T) {
	app := setupFormationApp(&MockFormationService{})

	body, contentType := buildMultipartFile(t, "file", "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	req := httptest.NewRequest(http.MethodPost, "/api/formations/"+validFormationID+"/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.NotEmpty(t, env.Errors)
	assert.Contains(t, env.Errors[0].Message, "unsupported file type")
}

func TestUploadFile_MissingFileReturns400(t *testing.T) {
	app := setupFormationApp(&MockFormationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/formations/"+validFormationID+"/upload", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
