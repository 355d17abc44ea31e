package service

import (
	"context"
	"fmt"
	"path"

	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
	"formations-backend/internal/logger"

	"go.uber.org/zap"
)

// FormationService defines the interface for formation management.
type FormationService interface {
	CreateFormation(ctx context.Context, organizationID, createdBy string, req *dto.CreateFormationRequest) (*dto.FormationResponse, error)
	GetFormation(ctx context.Context, id string) (*dto.FormationDetailResponse, error)
	ListFormations(ctx context.Context, organizationID string, status string) (*dto.ListFormationsResponse, error)
	UpdateFormation(ctx context.Context, id string, req *dto.UpdateFormationRequest) (*dto.FormationResponse, error)
	DeleteFormation(ctx context.Context, id string) error
	UploadFormationFile(ctx context.Context, id, fileName, contentType string, data []byte) (*dto.FormationResponse, error)
}

// formationService implements FormationService
type formationService struct {
	repo     domain.FormationRepository
	quizRepo domain.QuizRepository
	storage  domain.FileStorage
}

// NewFormationService creates a new instance of formationService.
func NewFormationService(repo domain.FormationRepository, quizRepo domain.QuizRepository, storage domain.FileStorage) FormationService {
	return &formationService{
		repo:     repo,
		quizRepo: quizRepo,
		storage:  storage,
	}
}

func toFormationResponse(f *domain.Formation) *dto.FormationResponse {
	return &dto.FormationResponse{
		ID:              f.ID,
		OrganizationID:  f.OrganizationID,
		Name:            f.Name,
		Type:            string(f.Type),
		Description:     f.Description,
		DurationMinutes: f.DurationMinutes,
		Status:          string(f.Status),
		FileURL:         f.FileURL,
		FileName:        f.FileName,
		FileSize:        f.FileSize,
		CreatedBy:       f.CreatedBy,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// CreateFormation implements FormationService.
func (s *formationService) CreateFormation(ctx context.Context, organizationID, createdBy string, req *dto.CreateFormationRequest) (*dto.FormationResponse, error) {
	status := domain.FormationStatusDraft
	if req.Status != "" {
		status = domain.FormationStatus(req.Status)
	}

	formation := &domain.Formation{
		OrganizationID:  organizationID,
		Name:            req.Name,
		Type:            domain.FormationType(req.Type),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Status:          status,
		CreatedBy:       createdBy,
	}

	if err := s.repo.CreateFormation(ctx, formation); err != nil {
		return nil, domain.NewInternalError("Failed to create formation", err)
	}

	logger.Get().Info("Formation created",
		zap.String("formationID", formation.ID),
		zap.String("organizationID", organizationID))

	return toFormationResponse(formation), nil
}

// GetFormation returns the formation with its nested quiz graph.
func (s *formationService) GetFormation(ctx context.Context, id string) (*dto.FormationDetailResponse, error) {
	formation, err := s.repo.GetFormationByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get formation", err)
	}
	if formation == nil {
		return nil, domain.NewFormationNotFoundError(id)
	}

	quizzes, err := s.quizRepo.GetQuizzesByFormationID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get formation quizzes", err)
	}

	detail := &dto.FormationDetailResponse{
		FormationResponse: *toFormationResponse(formation),
		Quizzes:           make([]dto.QuizResponse, 0, len(quizzes)),
	}
	for i := range quizzes {
		detail.Quizzes = append(detail.Quizzes, *toQuizResponse(&quizzes[i]))
	}
	return detail, nil
}

// ListFormations implements FormationService.
func (s *formationService) ListFormations(ctx context.Context, organizationID string, status string) (*dto.ListFormationsResponse, error) {
	var statusFilter *domain.FormationStatus
	if status != "" {
		fs := domain.FormationStatus(status)
		statusFilter = &fs
	}

	formations, err := s.repo.ListFormations(ctx, organizationID, statusFilter)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list formations", err)
	}

	resp := &dto.ListFormationsResponse{
		Formations: make([]dto.FormationResponse, 0, len(formations)),
	}
	for i := range formations {
		resp.Formations = append(resp.Formations, *toFormationResponse(&formations[i]))
	}
	return resp, nil
}

// UpdateFormation applies a partial update.
func (s *formationService) UpdateFormation(ctx context.Context, id string, req *dto.UpdateFormationRequest) (*dto.FormationResponse, error) {
	update := domain.FormationUpdate{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	}
	if req.Type != nil {
		t := domain.FormationType(*req.Type)
		update.Type = &t
	}
	if req.Status != nil {
		st := domain.FormationStatus(*req.Status)
		update.Status = &st
	}

	formation, err := s.repo.UpdateFormation(ctx, id, update)
	if err != nil {
		return nil, domain.NewInternalError("Failed to update formation", err)
	}
	if formation == nil {
		return nil, domain.NewFormationNotFoundError(id)
	}
	return toFormationResponse(formation), nil
}

// DeleteFormation hard-deletes the formation; dependent quizzes cascade
// away in the database.
func (s *formationService) DeleteFormation(ctx context.Context, id string) error {
	if err := s.repo.DeleteFormation(ctx, id); err != nil {
		if domainErr, ok := err.(*domain.DomainError); ok {
			return domainErr
		}
		return domain.NewInternalError("Failed to delete formation", err)
	}

	logger.Get().Info("Formation deleted", zap.String("formationID", id))
	return nil
}

// UploadFormationFile forwards the buffered file to storage and records
// its URL and metadata on the formation. MIME filtering happened at the
// request layer; the bytes never reach storage on a rejected type.
func (s *formationService) UploadFormationFile(ctx context.Context, id, fileName, contentType string, data []byte) (*dto.FormationResponse, error) {
	formation, err := s.repo.GetFormationByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get formation", err)
	}
	if formation == nil {
		return nil, domain.NewFormationNotFoundError(id)
	}

	objectPath := path.Join(formation.OrganizationID, formation.ID, fileName)
	fileURL, err := s.storage.Upload(ctx, objectPath, contentType, data)
	if err != nil {
		return nil, domain.NewStorageError(fmt.Sprintf("Failed to upload file for formation %s", id), err)
	}

	fileSize := int64(len(data))
	if err := s.repo.UpdateFormationFile(ctx, id, fileURL, fileName, fileSize); err != nil {
		return nil, domain.NewInternalError("Failed to record uploaded file", err)
	}

	formation.FileURL = fileURL
	formation.FileName = fileName
	formation.FileSize = fileSize

	logger.Get().Info("Formation file uploaded",
		zap.String("formationID", id),
		zap.String("fileName", fileName),
		zap.Int64("fileSize", fileSize))

	return toFormationResponse(formation), nil
}
