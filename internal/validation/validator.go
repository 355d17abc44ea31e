package validation

import (
	"regexp"
	"strconv"
	"strings"

	"formations-backend/internal/domain"
	"formations-backend/internal/dto"
)

var validFormationTypes = []string{"video", "ppt", "pdf", "article"}
var validFormationStatuses = []string{"draft", "active", "inactive"}
var validQuestionTypes = []string{"multiple_choice", "true_false", "text"}
var validProgressStatuses = []string{"not_started", "in_progress", "completed"}

// allowedUploadMIMETypes is the upload allow-list. Anything else is
// rejected before the file reaches storage.
var allowedUploadMIMETypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"application/pdf": true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain":    true,
	"text/markdown": true,
	"text/html":     true,
}

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateFormation validates the create formation payload.
func (v *Validator) ValidateCreateFormation(req *dto.CreateFormationRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	} else if len(req.Name) > 255 {
		errors = append(errors, domain.NewOutOfRangeError("name", len(req.Name), 1, 255))
	}

	if strings.TrimSpace(req.Type) == "" {
		errors = append(errors, domain.NewMissingFieldError("type"))
	} else if !contains(validFormationTypes, req.Type) {
		errors = append(errors, domain.NewInvalidEnumError("type", req.Type, validFormationTypes...))
	}

	if req.DurationMinutes < 0 {
		errors = append(errors, domain.NewOutOfRangeError("duration_minutes", req.DurationMinutes, 0, 100000))
	}

	if req.Status != "" && !contains(validFormationStatuses, req.Status) {
		errors = append(errors, domain.NewInvalidEnumError("status", req.Status, validFormationStatuses...))
	}

	return errors
}

// ValidateUpdateFormation validates the partial update payload.
func (v *Validator) ValidateUpdateFormation(req *dto.UpdateFormationRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors = append(errors, domain.NewInvalidFormatError("name", *req.Name))
	}
	if req.Type != nil && !contains(validFormationTypes, *req.Type) {
		errors = append(errors, domain.NewInvalidEnumError("type", *req.Type, validFormationTypes...))
	}
	if req.DurationMinutes != nil && *req.DurationMinutes < 0 {
		errors = append(errors, domain.NewOutOfRangeError("duration_minutes", *req.DurationMinutes, 0, 100000))
	}
	if req.Status != nil && !contains(validFormationStatuses, *req.Status) {
		errors = append(errors, domain.NewInvalidEnumError("status", *req.Status, validFormationStatuses...))
	}

	return errors
}

// ValidateCreateQuiz validates the quiz authoring payload including the
// nested question/answer arrays. Choice questions must mark at least one
// answer correct; the data layer does not re-check this.
func (v *Validator) ValidateCreateQuiz(req *dto.CreateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	}

	if req.PassingScore != nil && (*req.PassingScore < 0 || *req.PassingScore > 100) {
		errors = append(errors, domain.NewOutOfRangeError("passing_score", *req.PassingScore, 0, 100))
	}

	if req.MaxAttempts != nil && *req.MaxAttempts < 1 {
		errors = append(errors, domain.NewOutOfRangeError("max_attempts", *req.MaxAttempts, 1, 100))
	}

	if req.TimeLimitMinutes != nil && *req.TimeLimitMinutes < 1 {
		errors = append(errors, domain.NewOutOfRangeError("time_limit_minutes", *req.TimeLimitMinutes, 1, 100000))
	}

	if len(req.Questions) == 0 {
		errors = append(errors, domain.NewMissingFieldError("questions"))
		return errors
	}

	for i, q := range req.Questions {
		errors = append(errors, v.validateQuestion(i, &q)...)
	}

	return errors
}

func (v *Validator) validateQuestion(index int, q *dto.CreateQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	field := func(name string) string {
		return "questions[" + strconv.Itoa(index) + "]." + name
	}

	if strings.TrimSpace(q.QuestionText) == "" {
		errors = append(errors, domain.NewMissingFieldError(field("question_text")))
	}

	if !contains(validQuestionTypes, q.QuestionType) {
		errors = append(errors, domain.NewInvalidEnumError(field("question_type"), q.QuestionType, validQuestionTypes...))
		return errors
	}

	if q.Points != nil && *q.Points < 1 {
		errors = append(errors, domain.NewOutOfRangeError(field("points"), *q.Points, 1, 1000))
	}

	switch q.QuestionType {
	case "multiple_choice":
		if len(q.Answers) < 2 {
			errors = append(errors, domain.NewInvalidFormatError(field("answers"), len(q.Answers)))
		} else if !hasCorrectAnswer(q.Answers) {
			errors = append(errors, domain.ValidationError{
				Code:    domain.CodeInvalidInput,
				Field:   field("answers"),
				Message: "at least one answer must be marked correct",
			})
		}
	case "true_false":
		if len(q.Answers) != 2 {
			errors = append(errors, domain.NewInvalidFormatError(field("answers"), len(q.Answers)))
		} else if !hasCorrectAnswer(q.Answers) {
			errors = append(errors, domain.ValidationError{
				Code:    domain.CodeInvalidInput,
				Field:   field("answers"),
				Message: "at least one answer must be marked correct",
			})
		}
	case "text":
		// Text questions carry no answer options.
		if len(q.Answers) > 0 {
			errors = append(errors, domain.NewInvalidFormatError(field("answers"), len(q.Answers)))
		}
	}

	for j, a := range q.Answers {
		if strings.TrimSpace(a.AnswerText) == "" {
			errors = append(errors, domain.NewMissingFieldError(field("answers["+strconv.Itoa(j)+"].answer_text")))
		}
	}

	return errors
}

// ValidateSubmitQuiz validates a quiz submission payload.
func (v *Validator) ValidateSubmitQuiz(req *dto.SubmitQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
		return errors
	}

	for i, a := range req.Answers {
		field := "answers[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(a.QuestionID) == "" {
			errors = append(errors, domain.NewMissingFieldError(field+".question_id"))
		} else if !isValidULID(a.QuestionID) {
			errors = append(errors, domain.NewInvalidFormatError(field+".question_id", a.QuestionID))
		}
		if a.AnswerID != nil && !isValidULID(*a.AnswerID) {
			errors = append(errors, domain.NewInvalidFormatError(field+".answer_id", *a.AnswerID))
		}
	}

	if req.TimeSpentMinutes != nil && *req.TimeSpentMinutes < 0 {
		errors = append(errors, domain.NewOutOfRangeError("time_spent_minutes", *req.TimeSpentMinutes, 0, 100000))
	}

	return errors
}

// ValidateUpsertProgress validates a progress write. Percentage and status
// are always required because the write replaces the full row.
func (v *Validator) ValidateUpsertProgress(req *dto.UpsertProgressRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.ProgressPercentage == nil {
		errors = append(errors, domain.NewMissingFieldError("progress_percentage"))
	} else if *req.ProgressPercentage < 0 || *req.ProgressPercentage > 100 {
		errors = append(errors, domain.NewOutOfRangeError("progress_percentage", *req.ProgressPercentage, 0, 100))
	}

	if strings.TrimSpace(req.Status) == "" {
		errors = append(errors, domain.NewMissingFieldError("status"))
	} else if !contains(validProgressStatuses, req.Status) {
		errors = append(errors, domain.NewInvalidEnumError("status", req.Status, validProgressStatuses...))
	}

	return errors
}

// ValidateUpload checks the uploaded file against the MIME allow-list.
func (v *Validator) ValidateUpload(fileName, contentType string, size int64) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(fileName) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
		return errors
	}

	mime := contentType
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if !allowedUploadMIMETypes[strings.ToLower(mime)] {
		errors = append(errors, domain.ValidationError{
			Code:    domain.CodeInvalidFormat,
			Field:   "file",
			Message: "unsupported file type: " + contentType,
			Value:   contentType,
		})
	}

	if size <= 0 {
		errors = append(errors, domain.NewInvalidFormatError("file", size))
	}

	return errors
}

// ValidateID checks a ULID path parameter.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}
	return errors
}

// Helper functions for validation

func contains(allowed []string, value string) bool {
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

func hasCorrectAnswer(answers []dto.CreateAnswerRequest) bool {
	for _, a := range answers {
		if a.IsCorrect {
			return true
		}
	}
	return false
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

