package dto

import (
	"encoding/json"
	"time"
)

// CreateQuizRequest is the payload for POST /formations/:id/quiz.
// Questions and answers are created together with the quiz.
type CreateQuizRequest struct {
	Title            string                  `json:"title"`
	PassingScore     *int                    `json:"passing_score"`
	MaxAttempts      *int                    `json:"max_attempts"`
	TimeLimitMinutes *int                    `json:"time_limit_minutes"`
	Questions        []CreateQuestionRequest `json:"questions"`
}

// CreateQuestionRequest is one question in a quiz creation payload.
// OrderIndex defaults to the position in the array when unset.
type CreateQuestionRequest struct {
	QuestionText string                `json:"question_text"`
	QuestionType string                `json:"question_type"`
	Points       *int                  `json:"points"`
	OrderIndex   *int                  `json:"order_index"`
	Answers      []CreateAnswerRequest `json:"answers"`
}

// CreateAnswerRequest is one answer option of a choice question.
type CreateAnswerRequest struct {
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex *int   `json:"order_index"`
}

// QuizResponse is a quiz with its nested question/answer graph.
type QuizResponse struct {
	ID               string             `json:"id"`
	FormationID      string             `json:"formation_id"`
	Title            string             `json:"title"`
	PassingScore     int                `json:"passing_score"`
	MaxAttempts      int                `json:"max_attempts"`
	TimeLimitMinutes *int               `json:"time_limit_minutes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	Questions        []QuestionResponse `json:"questions"`
}

// QuestionResponse is one question in a quiz response.
type QuestionResponse struct {
	ID           string           `json:"id"`
	QuestionText string           `json:"question_text"`
	QuestionType string           `json:"question_type"`
	Points       int              `json:"points"`
	OrderIndex   int              `json:"order_index"`
	Answers      []AnswerResponse `json:"answers"`
}

// AnswerResponse is one answer option in a quiz response.
type AnswerResponse struct {
	ID         string `json:"id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index"`
}

// SubmittedAnswer is one answer in a quiz submission. AnswerID is set for
// choice questions, TextAnswer for text questions.
type SubmittedAnswer struct {
	QuestionID string  `json:"question_id"`
	AnswerID   *string `json:"answer_id,omitempty"`
	TextAnswer *string `json:"text_answer,omitempty"`
}

// SubmitQuizRequest is the payload for POST /quiz/:quizId/submit.
type SubmitQuizRequest struct {
	Answers          []SubmittedAnswer `json:"answers"`
	TimeSpentMinutes *int              `json:"time_spent_minutes"`
}

// QuizResultResponse is one recorded attempt.
type QuizResultResponse struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	QuizID           string          `json:"quiz_id"`
	Score            int             `json:"score"`
	TotalQuestions   int             `json:"total_questions"`
	CorrectAnswers   int             `json:"correct_answers"`
	Passed           bool            `json:"passed"`
	AttemptNumber    int             `json:"attempt_number"`
	TimeSpentMinutes *int            `json:"time_spent_minutes,omitempty"`
	AnswersData      json.RawMessage `json:"answers_data,omitempty"`
	CompletedAt      time.Time       `json:"completed_at"`
}

// QuizResultsResponse wraps a user's attempt history for one quiz.
type QuizResultsResponse struct {
	Results []QuizResultResponse `json:"results"`
}
