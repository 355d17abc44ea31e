package service

import (
	"context"
	"time"

	"formations-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockFormationRepository ---
type MockFormationRepository struct {
	mock.Mock
}

func (m *MockFormationRepository) CreateFormation(ctx context.Context, formation *domain.Formation) error {
	args := m.Called(ctx, formation)
	return args.Error(0)
}

func (m *MockFormationRepository) GetFormationByID(ctx context.Context, id string) (*domain.Formation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Formation), args.Error(1)
}

func (m *MockFormationRepository) ListFormations(ctx context.Context, organizationID string, status *domain.FormationStatus) ([]domain.Formation, error) {
	args := m.Called(ctx, organizationID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Formation), args.Error(1)
}

func (m *MockFormationRepository) UpdateFormation(ctx context.Context, id string, update domain.FormationUpdate) (*domain.Formation, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Formation), args.Error(1)
}

func (m *MockFormationRepository) DeleteFormation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFormationRepository) UpdateFormationFile(ctx context.Context, id, fileURL, fileName string, fileSize int64) error {
	args := m.Called(ctx, id, fileURL, fileName, fileSize)
	return args.Error(0)
}

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuizzesByFormationID(ctx context.Context, formationID string) ([]domain.Quiz, error) {
	args := m.Called(ctx, formationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quiz), args.Error(1)
}

// --- MockQuizResultRepository ---
type MockQuizResultRepository struct {
	mock.Mock
}

func (m *MockQuizResultRepository) CreateResult(ctx context.Context, result *domain.UserQuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockQuizResultRepository) MaxAttemptNumber(ctx context.Context, userID, quizID string) (int, error) {
	args := m.Called(ctx, userID, quizID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuizResultRepository) ListResultsByUserAndQuiz(ctx context.Context, userID, quizID string) ([]domain.UserQuizResult, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserQuizResult), args.Error(1)
}

// --- MockProgressRepository ---
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) UpsertProgress(ctx context.Context, progress *domain.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) GetProgressByUserAndFormation(ctx context.Context, userID, formationID string) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID, formationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) ListProgressByUser(ctx context.Context, userID string) ([]domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProgress), args.Error(1)
}

// --- MockTransactionManager ---
// Runs the function directly; service tests do not exercise real
// transactions.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// --- MockFileStorage ---
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, objectPath, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, objectPath string) error {
	args := m.Called(ctx, objectPath)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
