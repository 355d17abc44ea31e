package domain

import (
	"context"
	"encoding/json"
	"time"
)

// QuestionType classifies how a question is answered and scored.
// Text questions have no answer key and are never auto-scored.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeText           QuestionType = "text"
)

// Quiz is a scored assessment attached to a formation.
type Quiz struct {
	ID               string
	FormationID      string
	Title            string
	PassingScore     int
	MaxAttempts      int
	TimeLimitMinutes *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Questions        []QuizQuestion
}

// QuizQuestion is an ordered child of a quiz. OrderIndex defines display
// order and is also the order queries return.
type QuizQuestion struct {
	ID           string
	QuizID       string
	QuestionText string
	QuestionType QuestionType
	Points       int
	OrderIndex   int
	Answers      []QuizAnswer
}

// QuizAnswer is one option of a choice question. IsCorrect flags the
// scoring key; it is never exposed to quiz takers.
type QuizAnswer struct {
	ID         string
	QuestionID string
	AnswerText string
	IsCorrect  bool
	OrderIndex int
}

// UserQuizResult is one immutable quiz attempt. A new attempt is always a
// new row; attempt numbers are unique per (user, quiz).
type UserQuizResult struct {
	ID               string
	UserID           string
	QuizID           string
	Score            int
	TotalQuestions   int
	CorrectAnswers   int
	Passed           bool
	AttemptNumber    int
	TimeSpentMinutes *int
	// AnswersData keeps the submitted answers verbatim for audit.
	AnswersData json.RawMessage
	CompletedAt time.Time
}

// QuizRepository is the persistence port for quizzes and their nested
// question/answer graph.
type QuizRepository interface {
	// CreateQuiz inserts the quiz together with its questions and answers.
	// Callers run it inside a transaction so a partial failure rolls back.
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	// GetQuizByID returns the quiz with questions and answers ordered by
	// order_index ascending, or (nil, nil) when absent.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	// GetQuizzesByFormationID returns the full quiz graphs of a formation.
	GetQuizzesByFormationID(ctx context.Context, formationID string) ([]Quiz, error)
}

// QuizResultRepository is the persistence port for quiz attempts.
type QuizResultRepository interface {
	CreateResult(ctx context.Context, result *UserQuizResult) error
	// MaxAttemptNumber returns the caller's highest attempt number for the
	// quiz, or 0 when there is none.
	MaxAttemptNumber(ctx context.Context, userID, quizID string) (int, error)
	ListResultsByUserAndQuiz(ctx context.Context, userID, quizID string) ([]UserQuizResult, error)
}
