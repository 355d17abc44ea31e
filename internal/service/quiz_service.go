package service

import (
	"context"
	"encoding/json"
	"math"

	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
	"formations-backend/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz authoring, submission and
// attempt history.
type QuizService interface {
	CreateQuiz(ctx context.Context, formationID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error)
	GetQuizResults(ctx context.Context, userID, quizID string) (*dto.QuizResultsResponse, error)
}

const (
	defaultPassingScore = 70
	defaultMaxAttempts  = 3
	defaultPoints       = 1
)

// quizService implements QuizService
type quizService struct {
	quizRepo      domain.QuizRepository
	resultRepo    domain.QuizResultRepository
	formationRepo domain.FormationRepository
	txManager     domain.TransactionManager
	graphCache    QuizGraphCacheService
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(
	quizRepo domain.QuizRepository,
	resultRepo domain.QuizResultRepository,
	formationRepo domain.FormationRepository,
	txManager domain.TransactionManager,
	graphCache QuizGraphCacheService,
) QuizService {
	return &quizService{
		quizRepo:      quizRepo,
		resultRepo:    resultRepo,
		formationRepo: formationRepo,
		txManager:     txManager,
		graphCache:    graphCache,
	}
}

func toQuizResponse(quiz *domain.Quiz) *dto.QuizResponse {
	resp := &dto.QuizResponse{
		ID:               quiz.ID,
		FormationID:      quiz.FormationID,
		Title:            quiz.Title,
		PassingScore:     quiz.PassingScore,
		MaxAttempts:      quiz.MaxAttempts,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		CreatedAt:        quiz.CreatedAt,
		Questions:        make([]dto.QuestionResponse, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		question := dto.QuestionResponse{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: string(q.QuestionType),
			Points:       q.Points,
			OrderIndex:   q.OrderIndex,
			Answers:      make([]dto.AnswerResponse, 0, len(q.Answers)),
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, dto.AnswerResponse{
				ID:         a.ID,
				AnswerText: a.AnswerText,
				IsCorrect:  a.IsCorrect,
				OrderIndex: a.OrderIndex,
			})
		}
		resp.Questions = append(resp.Questions, question)
	}
	return resp
}

func toQuizResultResponse(r *domain.UserQuizResult) *dto.QuizResultResponse {
	return &dto.QuizResultResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		QuizID:           r.QuizID,
		Score:            r.Score,
		TotalQuestions:   r.TotalQuestions,
		CorrectAnswers:   r.CorrectAnswers,
		Passed:           r.Passed,
		AttemptNumber:    r.AttemptNumber,
		TimeSpentMinutes: r.TimeSpentMinutes,
		AnswersData:      r.AnswersData,
		CompletedAt:      r.CompletedAt,
	}
}

// CreateQuiz creates the quiz with its question/answer graph in a single
// transaction, so a failure partway leaves nothing behind. Question and
// answer order indexes default to their position in the payload.
func (s *quizService) CreateQuiz(ctx context.Context, formationID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	formation, err := s.formationRepo.GetFormationByID(ctx, formationID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get formation", err)
	}
	if formation == nil {
		return nil, domain.NewFormationNotFoundError(formationID)
	}

	quiz := &domain.Quiz{
		FormationID:      formationID,
		Title:            req.Title,
		PassingScore:     defaultPassingScore,
		MaxAttempts:      defaultMaxAttempts,
		TimeLimitMinutes: req.TimeLimitMinutes,
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.MaxAttempts != nil {
		quiz.MaxAttempts = *req.MaxAttempts
	}

	quiz.Questions = make([]domain.QuizQuestion, 0, len(req.Questions))
	for i, q := range req.Questions {
		question := domain.QuizQuestion{
			QuestionText: q.QuestionText,
			QuestionType: domain.QuestionType(q.QuestionType),
			Points:       defaultPoints,
			OrderIndex:   i,
		}
		if q.Points != nil {
			question.Points = *q.Points
		}
		if q.OrderIndex != nil {
			question.OrderIndex = *q.OrderIndex
		}

		question.Answers = make([]domain.QuizAnswer, 0, len(q.Answers))
		for j, a := range q.Answers {
			answer := domain.QuizAnswer{
				AnswerText: a.AnswerText,
				IsCorrect:  a.IsCorrect,
				OrderIndex: j,
			}
			if a.OrderIndex != nil {
				answer.OrderIndex = *a.OrderIndex
			}
			question.Answers = append(question.Answers, answer)
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.quizRepo.CreateQuiz(txCtx, quiz)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to create quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("formationID", formationID),
		zap.Int("questions", len(quiz.Questions)))

	return toQuizResponse(quiz), nil
}

// GetQuiz returns the quiz with its nested graph.
func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.getQuizGraph(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return toQuizResponse(quiz), nil
}

// SubmitQuiz scores the submission against the quiz's answer key and
// records it as a new immutable attempt. The attempt number is computed
// inside the insert transaction; the unique constraint on
// (user_id, quiz_id, attempt_number) serializes concurrent submissions.
// max_attempts is deliberately not enforced here.
func (s *quizService) SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	quiz, err := s.getQuizGraph(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	correctAnswers, totalQuestions := scoreSubmission(quiz, req.Answers)

	score := 0
	if totalQuestions > 0 {
		score = int(math.Round(float64(correctAnswers) / float64(totalQuestions) * 100))
	}
	passed := score >= quiz.PassingScore

	answersData, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, domain.NewInternalError("Failed to serialize submitted answers", err)
	}

	result := &domain.UserQuizResult{
		UserID:           userID,
		QuizID:           quizID,
		Score:            score,
		TotalQuestions:   totalQuestions,
		CorrectAnswers:   correctAnswers,
		Passed:           passed,
		TimeSpentMinutes: req.TimeSpentMinutes,
		AnswersData:      answersData,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		maxAttempt, txErr := s.resultRepo.MaxAttemptNumber(txCtx, userID, quizID)
		if txErr != nil {
			return txErr
		}
		result.AttemptNumber = maxAttempt + 1
		return s.resultRepo.CreateResult(txCtx, result)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to record quiz attempt", err)
	}

	logger.Get().Info("Quiz submitted",
		zap.String("quizID", quizID),
		zap.String("userID", userID),
		zap.Int("score", score),
		zap.Bool("passed", passed),
		zap.Int("attemptNumber", result.AttemptNumber))

	return toQuizResultResponse(result), nil
}

// GetQuizResults returns the caller's attempt history for a quiz.
func (s *quizService) GetQuizResults(ctx context.Context, userID, quizID string) (*dto.QuizResultsResponse, error) {
	quiz, err := s.getQuizGraph(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	results, err := s.resultRepo.ListResultsByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quiz results", err)
	}

	resp := &dto.QuizResultsResponse{
		Results: make([]dto.QuizResultResponse, 0, len(results)),
	}
	for i := range results {
		resp.Results = append(resp.Results, *toQuizResultResponse(&results[i]))
	}
	return resp, nil
}

func (s *quizService) getQuizGraph(ctx context.Context, quizID string) (*domain.Quiz, error) {
	if s.graphCache != nil {
		return s.graphCache.GetQuizGraph(ctx, quizID)
	}
	return s.quizRepo.GetQuizByID(ctx, quizID)
}

// scoreSubmission counts correct answers. A question counts as correct
// only when a submitted answer references one of its options flagged
// is_correct. Text questions have no answer key so they always count
// against the score.
func scoreSubmission(quiz *domain.Quiz, answers []dto.SubmittedAnswer) (correct, total int) {
	total = len(quiz.Questions)

	submitted := make(map[string]*dto.SubmittedAnswer, len(answers))
	for i := range answers {
		submitted[answers[i].QuestionID] = &answers[i]
	}

	for _, question := range quiz.Questions {
		answer, ok := submitted[question.ID]
		if !ok || answer.AnswerID == nil {
			continue
		}
		for _, option := range question.Answers {
			if option.ID == *answer.AnswerID && option.IsCorrect {
				correct++
				break
			}
		}
	}
	return correct, total
}
