package repository

import (
	"context"
	"fmt"
	"time"

	"formations-backend/internal/domain"
	"formations-backend/internal/repository/models"
	"formations-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizResultRepository implements domain.QuizResultRepository using sqlx.
type sqlxQuizResultRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizResultRepository creates a new instance of sqlxQuizResultRepository.
func NewSQLXQuizResultRepository(db *sqlx.DB) domain.QuizResultRepository {
	return &sqlxQuizResultRepository{db: db}
}

func toDomainQuizResult(m *models.UserQuizResult) *domain.UserQuizResult {
	if m == nil {
		return nil
	}
	return &domain.UserQuizResult{
		ID:               m.ID,
		UserID:           m.UserID,
		QuizID:           m.QuizID,
		Score:            m.Score,
		TotalQuestions:   m.TotalQuestions,
		CorrectAnswers:   m.CorrectAnswers,
		Passed:           m.Passed,
		AttemptNumber:    m.AttemptNumber,
		TimeSpentMinutes: util.NullInt64ToIntPtr(m.TimeSpentMinutes),
		AnswersData:      m.AnswersData,
		CompletedAt:      m.CompletedAt,
	}
}

// CreateResult inserts a new immutable attempt row. The unique constraint
// on (user_id, quiz_id, attempt_number) rejects a concurrent submission
// that computed the same attempt number.
func (r *sqlxQuizResultRepository) CreateResult(ctx context.Context, result *domain.UserQuizResult) error {
	if result == nil {
		return fmt.Errorf("cannot create nil quiz result")
	}
	result.ID = util.NewULID()
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}

	query := `INSERT INTO user_quiz_results (
		id, user_id, quiz_id, score, total_questions, correct_answers,
		passed, attempt_number, time_spent_minutes, answers_data, completed_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		result.ID,
		result.UserID,
		result.QuizID,
		result.Score,
		result.TotalQuestions,
		result.CorrectAnswers,
		result.Passed,
		result.AttemptNumber,
		util.IntPtrToNullInt64(result.TimeSpentMinutes),
		[]byte(result.AnswersData),
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}
	return nil
}

// MaxAttemptNumber returns the user's highest attempt number for the quiz,
// or 0 when no attempt exists.
func (r *sqlxQuizResultRepository) MaxAttemptNumber(ctx context.Context, userID, quizID string) (int, error) {
	var maxAttempt int
	query := `SELECT COALESCE(MAX(attempt_number), 0)
	FROM user_quiz_results WHERE user_id = $1 AND quiz_id = $2`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &maxAttempt, query, userID, quizID); err != nil {
		return 0, fmt.Errorf("failed to get max attempt number: %w", err)
	}
	return maxAttempt, nil
}

// ListResultsByUserAndQuiz returns the user's attempts for a quiz, newest
// attempt first.
func (r *sqlxQuizResultRepository) ListResultsByUserAndQuiz(ctx context.Context, userID, quizID string) ([]domain.UserQuizResult, error) {
	var rows []models.UserQuizResult
	query := `SELECT id, user_id, quiz_id, score, total_questions, correct_answers,
		passed, attempt_number, time_spent_minutes, answers_data, completed_at
	FROM user_quiz_results
	WHERE user_id = $1 AND quiz_id = $2
	ORDER BY attempt_number DESC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, userID, quizID); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}

	results := make([]domain.UserQuizResult, 0, len(rows))
	for i := range rows {
		results = append(results, *toDomainQuizResult(&rows[i]))
	}
	return results, nil
}
