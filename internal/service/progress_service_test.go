package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"formations-backend/internal/domain"
	"formations-backend/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpsertProgress_Success(t *testing.T) {
	repo := new(MockProgressRepository)
	formationRepo := new(MockFormationRepository)
	svc := NewProgressService(repo, formationRepo)

	started := time.Now().UTC()
	formationRepo.On("GetFormationByID", mock.Anything, "f1").Return(&domain.Formation{ID: "f1"}, nil)
	repo.On("UpsertProgress", mock.Anything, mock.MatchedBy(func(p *domain.UserProgress) bool {
		return p.UserID == "user-1" &&
			p.FormationID == "f1" &&
			p.ProgressPercentage == 40 &&
			p.Status == domain.ProgressStatusInProgress &&
			p.StartedAt != nil && p.CompletedAt == nil
	})).Return(nil)

	req := &dto.UpsertProgressRequest{
		ProgressPercentage: intPtr(40),
		Status:             "in_progress",
		StartedAt:          &started,
	}

	resp, err := svc.UpsertProgress(context.Background(), "user-1", "f1", req)
	require.NoError(t, err)
	assert.Equal(t, 40, resp.ProgressPercentage)
	assert.Equal(t, "in_progress", resp.Status)
	assert.Nil(t, resp.CompletedAt)
	repo.AssertExpectations(t)
}

func TestUpsertProgress_FormationNotFound(t *testing.T) {
	repo := new(MockProgressRepository)
	formationRepo := new(MockFormationRepository)
	svc := NewProgressService(repo, formationRepo)

	formationRepo.On("GetFormationByID", mock.Anything, "missing").Return(nil, nil)

	req := &dto.UpsertProgressRequest{ProgressPercentage: intPtr(10), Status: "in_progress"}
	_, err := svc.UpsertProgress(context.Background(), "user-1", "missing", req)
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeFormationNotFound, domainErr.Code)
	repo.AssertNotCalled(t, "UpsertProgress", mock.Anything, mock.Anything)
}

func TestUpsertProgress_RepositoryFailure(t *testing.T) {
	repo := new(MockProgressRepository)
	formationRepo := new(MockFormationRepository)
	svc := NewProgressService(repo, formationRepo)

	formationRepo.On("GetFormationByID", mock.Anything, "f1").Return(&domain.Formation{ID: "f1"}, nil)
	repo.On("UpsertProgress", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	req := &dto.UpsertProgressRequest{ProgressPercentage: intPtr(10), Status: "in_progress"}
	_, err := svc.UpsertProgress(context.Background(), "user-1", "f1", req)
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestGetFormationProgress_NotFound(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := NewProgressService(repo, new(MockFormationRepository))

	repo.On("GetProgressByUserAndFormation", mock.Anything, "user-1", "f1").Return(nil, nil)

	_, err := svc.GetFormationProgress(context.Background(), "user-1", "f1")
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestGetFormationProgress_Success(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := NewProgressService(repo, new(MockFormationRepository))

	repo.On("GetProgressByUserAndFormation", mock.Anything, "user-1", "f1").Return(&domain.UserProgress{
		ID:                 "p1",
		UserID:             "user-1",
		FormationID:        "f1",
		ProgressPercentage: 100,
		Status:             domain.ProgressStatusCompleted,
	}, nil)

	resp, err := svc.GetFormationProgress(context.Background(), "user-1", "f1")
	require.NoError(t, err)
	assert.Equal(t, 100, resp.ProgressPercentage)
	assert.Equal(t, "completed", resp.Status)
}

func TestListProgress_ReturnsAllRows(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := NewProgressService(repo, new(MockFormationRepository))

	repo.On("ListProgressByUser", mock.Anything, "user-1").Return([]domain.UserProgress{
		{ID: "p1", FormationID: "f1", ProgressPercentage: 100, Status: domain.ProgressStatusCompleted},
		{ID: "p2", FormationID: "f2", ProgressPercentage: 25, Status: domain.ProgressStatusInProgress},
	}, nil)

	resp, err := svc.ListProgress(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, resp.Progress, 2)
	assert.Equal(t, "f1", resp.Progress[0].FormationID)
	assert.Equal(t, "f2", resp.Progress[1].FormationID)
}
