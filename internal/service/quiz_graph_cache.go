package service

import (
	"context"
	"encoding/json"
	"errors"

	"formations-backend/internal/cache"
	"formations-backend/internal/config"
	"formations-backend/internal/domain"
	"formations-backend/internal/logger"

	"go.uber.org/zap"
)

// QuizGraphCacheService keeps full quiz graphs (quiz + questions + answers,
// including the is_correct flags) in the cache so repeated submissions do
// not re-read three tables. Entries are TTL-bounded; quizzes are immutable
// after authoring so no explicit invalidation is needed.
type QuizGraphCacheService interface {
	GetQuizGraph(ctx context.Context, quizID string) (*domain.Quiz, error)
}

type quizGraphCacheService struct {
	cache domain.Cache
	repo  domain.QuizRepository
	cfg   *config.Config
}

// NewQuizGraphCacheService creates a new QuizGraphCacheService.
func NewQuizGraphCacheService(cacheClient domain.Cache, repo domain.QuizRepository, cfg *config.Config) QuizGraphCacheService {
	return &quizGraphCacheService{
		cache: cacheClient,
		repo:  repo,
		cfg:   cfg,
	}
}

// GetQuizGraph returns the cached graph or falls through to the repository.
// Cache failures degrade to a repository read, never to a request failure.
func (s *quizGraphCacheService) GetQuizGraph(ctx context.Context, quizID string) (*domain.Quiz, error) {
	key := cache.GenerateCacheKey("quiz", "graph", quizID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var quiz domain.Quiz
			if unmarshalErr := json.Unmarshal([]byte(cached), &quiz); unmarshalErr == nil {
				return &quiz, nil
			}
			logger.Get().Warn("Failed to unmarshal cached quiz graph, falling back to repository",
				zap.String("quizID", quizID))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Error("Cache read failed for quiz graph",
				zap.Error(err),
				zap.String("quizID", quizID))
		}
	}

	quiz, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, nil
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(quiz); marshalErr == nil {
			if setErr := s.cache.Set(ctx, key, string(payload), s.cfg.Cache.QuizGraphTTL); setErr != nil {
				logger.Get().Warn("Cache write failed for quiz graph",
					zap.Error(setErr),
					zap.String("quizID", quizID))
			}
		}
	}

	return quiz, nil
}
