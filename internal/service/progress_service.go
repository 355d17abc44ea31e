package service

import (
	"context"

	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
	"formations-backend/internal/logger"

	"go.uber.org/zap"
)

// ProgressService defines the interface for per-user formation progress.
type ProgressService interface {
	UpsertProgress(ctx context.Context, userID, formationID string, req *dto.UpsertProgressRequest) (*dto.ProgressResponse, error)
	GetFormationProgress(ctx context.Context, userID, formationID string) (*dto.ProgressResponse, error)
	ListProgress(ctx context.Context, userID string) (*dto.ProgressListResponse, error)
}

// progressService implements ProgressService
type progressService struct {
	repo          domain.ProgressRepository
	formationRepo domain.FormationRepository
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(repo domain.ProgressRepository, formationRepo domain.FormationRepository) ProgressService {
	return &progressService{
		repo:          repo,
		formationRepo: formationRepo,
	}
}

func toProgressResponse(p *domain.UserProgress) *dto.ProgressResponse {
	return &dto.ProgressResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		FormationID:        p.FormationID,
		ProgressPercentage: p.ProgressPercentage,
		Status:             string(p.Status),
		StartedAt:          p.StartedAt,
		CompletedAt:        p.CompletedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// UpsertProgress writes the caller's full progress row for a formation.
// Last write wins; callers supply every field they want persisted.
func (s *progressService) UpsertProgress(ctx context.Context, userID, formationID string, req *dto.UpsertProgressRequest) (*dto.ProgressResponse, error) {
	formation, err := s.formationRepo.GetFormationByID(ctx, formationID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get formation", err)
	}
	if formation == nil {
		return nil, domain.NewFormationNotFoundError(formationID)
	}

	progress := &domain.UserProgress{
		UserID:             userID,
		FormationID:        formationID,
		ProgressPercentage: *req.ProgressPercentage,
		Status:             domain.ProgressStatus(req.Status),
		StartedAt:          req.StartedAt,
		CompletedAt:        req.CompletedAt,
	}

	if err := s.repo.UpsertProgress(ctx, progress); err != nil {
		return nil, domain.NewInternalError("Failed to upsert progress", err)
	}

	logger.Get().Info("Progress updated",
		zap.String("userID", userID),
		zap.String("formationID", formationID),
		zap.Int("percentage", progress.ProgressPercentage),
		zap.String("status", string(progress.Status)))

	return toProgressResponse(progress), nil
}

// GetFormationProgress returns the caller's progress on one formation.
func (s *progressService) GetFormationProgress(ctx context.Context, userID, formationID string) (*dto.ProgressResponse, error) {
	progress, err := s.repo.GetProgressByUserAndFormation(ctx, userID, formationID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get progress", err)
	}
	if progress == nil {
		return nil, domain.NewNotFoundError("No progress recorded for this formation")
	}
	return toProgressResponse(progress), nil
}

// ListProgress returns all of the caller's progress rows.
func (s *progressService) ListProgress(ctx context.Context, userID string) (*dto.ProgressListResponse, error) {
	rows, err := s.repo.ListProgressByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list progress", err)
	}

	resp := &dto.ProgressListResponse{
		Progress: make([]dto.ProgressResponse, 0, len(rows)),
	}
	for i := range rows {
		resp.Progress = append(resp.Progress, *toProgressResponse(&rows[i]))
	}
	return resp, nil
}
