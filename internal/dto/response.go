package dto

import "formations-backend/internal/domain"

// Response is the uniform JSON envelope every endpoint returns.
type Response struct {
	Success bool                     `json:"success"`
	Data    interface{}              `json:"data,omitempty"`
	Message string                   `json:"message"`
	Errors  []domain.ValidationError `json:"errors,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// NewErrorResponse wraps a failure message in the envelope.
func NewErrorResponse(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}

// NewValidationErrorResponse wraps itemized validation issues.
func NewValidationErrorResponse(message string, errs domain.ValidationErrors) Response {
	return Response{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}
