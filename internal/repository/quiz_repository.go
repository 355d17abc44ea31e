package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"formations-backend/internal/domain"
	"formations-backend/internal/repository/models"
	"formations-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter.
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:               m.ID,
		FormationID:      m.FormationID,
		Title:            m.Title,
		PassingScore:     m.PassingScore,
		MaxAttempts:      m.MaxAttempts,
		TimeLimitMinutes: util.NullInt64ToIntPtr(m.TimeLimitMinutes),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toDomainQuestion(m *models.QuizQuestion) domain.QuizQuestion {
	return domain.QuizQuestion{
		ID:           m.ID,
		QuizID:       m.QuizID,
		QuestionText: m.QuestionText,
		QuestionType: domain.QuestionType(m.QuestionType),
		Points:       m.Points,
		OrderIndex:   m.OrderIndex,
	}
}

func toDomainAnswer(m *models.QuizAnswer) domain.QuizAnswer {
	return domain.QuizAnswer{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		AnswerText: m.AnswerText,
		IsCorrect:  m.IsCorrect,
		OrderIndex: m.OrderIndex,
	}
}

// CreateQuiz inserts the quiz with its questions and answers. The inserts
// are sequential; run this inside a transaction so a failure partway rolls
// everything back.
func (a *QuizDatabaseAdapter) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot create nil quiz")
	}
	executor := GetExecutor(ctx, a.db)

	quiz.ID = util.NewULID()
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt

	quizQuery := `INSERT INTO quizzes (
		id, formation_id, title, passing_score, max_attempts, time_limit_minutes,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := executor.ExecContext(ctx, quizQuery,
		quiz.ID,
		quiz.FormationID,
		quiz.Title,
		quiz.PassingScore,
		quiz.MaxAttempts,
		util.IntPtrToNullInt64(quiz.TimeLimitMinutes),
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	questionQuery := `INSERT INTO quiz_questions (
		id, quiz_id, question_text, question_type, points, order_index, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	answerQuery := `INSERT INTO quiz_answers (
		id, question_id, answer_text, is_correct, order_index, created_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	for qi := range quiz.Questions {
		question := &quiz.Questions[qi]
		question.ID = util.NewULID()
		question.QuizID = quiz.ID

		_, err := executor.ExecContext(ctx, questionQuery,
			question.ID,
			question.QuizID,
			question.QuestionText,
			string(question.QuestionType),
			question.Points,
			question.OrderIndex,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to create quiz question: %w", err)
		}

		for ai := range question.Answers {
			answer := &question.Answers[ai]
			answer.ID = util.NewULID()
			answer.QuestionID = question.ID

			_, err := executor.ExecContext(ctx, answerQuery,
				answer.ID,
				answer.QuestionID,
				answer.AnswerText,
				answer.IsCorrect,
				answer.OrderIndex,
				now,
			)
			if err != nil {
				return fmt.Errorf("failed to create quiz answer: %w", err)
			}
		}
	}

	return nil
}

// GetQuizByID returns the quiz with its nested graph, questions and answers
// ordered by order_index ascending, or (nil, nil) when absent.
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	executor := GetExecutor(ctx, a.db)

	var model models.Quiz
	quizQuery := `SELECT id, formation_id, title, passing_score, max_attempts,
		time_limit_minutes, created_at, updated_at
	FROM quizzes WHERE id = $1`

	err := executor.GetContext(ctx, &model, quizQuery, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}

	quiz := toDomainQuiz(&model)
	if err := a.loadQuestionGraph(ctx, executor, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuizzesByFormationID returns the full quiz graphs of a formation.
func (a *QuizDatabaseAdapter) GetQuizzesByFormationID(ctx context.Context, formationID string) ([]domain.Quiz, error) {
	executor := GetExecutor(ctx, a.db)

	var rows []models.Quiz
	query := `SELECT id, formation_id, title, passing_score, max_attempts,
		time_limit_minutes, created_at, updated_at
	FROM quizzes WHERE formation_id = $1 ORDER BY created_at ASC`

	if err := executor.SelectContext(ctx, &rows, query, formationID); err != nil {
		return nil, fmt.Errorf("failed to get quizzes for formation %s: %w", formationID, err)
	}

	quizzes := make([]domain.Quiz, 0, len(rows))
	for i := range rows {
		quiz := toDomainQuiz(&rows[i])
		if err := a.loadQuestionGraph(ctx, executor, quiz); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *quiz)
	}
	return quizzes, nil
}

// loadQuestionGraph fills in the quiz's questions and their answers.
// Ordering comes from the queries, not from stored insertion order.
func (a *QuizDatabaseAdapter) loadQuestionGraph(ctx context.Context, executor DBTX, quiz *domain.Quiz) error {
	var questionRows []models.QuizQuestion
	questionQuery := `SELECT id, quiz_id, question_text, question_type, points, order_index, created_at
	FROM quiz_questions WHERE quiz_id = $1 ORDER BY order_index ASC`

	if err := executor.SelectContext(ctx, &questionRows, questionQuery, quiz.ID); err != nil {
		return fmt.Errorf("failed to get questions for quiz %s: %w", quiz.ID, err)
	}

	quiz.Questions = make([]domain.QuizQuestion, 0, len(questionRows))
	answerQuery := `SELECT id, question_id, answer_text, is_correct, order_index, created_at
	FROM quiz_answers WHERE question_id = $1 ORDER BY order_index ASC`

	for i := range questionRows {
		question := toDomainQuestion(&questionRows[i])

		var answerRows []models.QuizAnswer
		if err := executor.SelectContext(ctx, &answerRows, answerQuery, question.ID); err != nil {
			return fmt.Errorf("failed to get answers for question %s: %w", question.ID, err)
		}
		question.Answers = make([]domain.QuizAnswer, 0, len(answerRows))
		for j := range answerRows {
			question.Answers = append(question.Answers, toDomainAnswer(&answerRows[j]))
		}

		quiz.Questions = append(quiz.Questions, question)
	}
	return nil
}
