package models

import (
	"database/sql"
	"time"
)

// Quiz is the database row for the quizzes table.
type Quiz struct {
	ID               string        `db:"id"`
	FormationID      string        `db:"formation_id"`
	Title            string        `db:"title"`
	PassingScore     int           `db:"passing_score"`
	MaxAttempts      int           `db:"max_attempts"`
	TimeLimitMinutes sql.NullInt64 `db:"time_limit_minutes"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

// QuizQuestion is the database row for the quiz_questions table.
type QuizQuestion struct {
	ID           string    `db:"id"`
	QuizID       string    `db:"quiz_id"`
	QuestionText string    `db:"question_text"`
	QuestionType string    `db:"question_type"`
	Points       int       `db:"points"`
	OrderIndex   int       `db:"order_index"`
	CreatedAt    time.Time `db:"created_at"`
}

// QuizAnswer is the database row for the quiz_answers table.
type QuizAnswer struct {
	ID         string    `db:"id"`
	QuestionID string    `db:"question_id"`
	AnswerText string    `db:"answer_text"`
	IsCorrect  bool      `db:"is_correct"`
	OrderIndex int       `db:"order_index"`
	CreatedAt  time.Time `db:"created_at"`
}

// UserQuizResult is the database row for the user_quiz_results table.
// answers_data is stored as JSONB, kept opaque here.
type UserQuizResult struct {
	ID               string        `db:"id"`
	UserID           string        `db:"user_id"`
	QuizID           string        `db:"quiz_id"`
	Score            int           `db:"score"`
	TotalQuestions   int           `db:"total_questions"`
	CorrectAnswers   int           `db:"correct_answers"`
	Passed           bool          `db:"passed"`
	AttemptNumber    int           `db:"attempt_number"`
	TimeSpentMinutes sql.NullInt64 `db:"time_spent_minutes"`
	AnswersData      []byte        `db:"answers_data"`
	CompletedAt      time.Time     `db:"completed_at"`
}
