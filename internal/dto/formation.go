package dto

import "time"

// CreateFormationRequest is the payload for POST /formations.
type CreateFormationRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
}

// UpdateFormationRequest is the partial payload for PUT /formations/:id.
// Nil fields are left unchanged.
type UpdateFormationRequest struct {
	Name            *string `json:"name"`
	Type            *string `json:"type"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	Status          *string `json:"status"`
}

// FormationResponse represents a formation in API responses.
type FormationResponse struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organization_id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	FileURL         string    `json:"file_url,omitempty"`
	FileName        string    `json:"file_name,omitempty"`
	FileSize        int64     `json:"file_size,omitempty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FormationDetailResponse is a formation with its nested quiz graph,
// returned by GET /formations/:id.
type FormationDetailResponse struct {
	FormationResponse
	Quizzes []QuizResponse `json:"quizzes"`
}

// ListFormationsResponse wraps the formation list.
type ListFormationsResponse struct {
	Formations []FormationResponse `json:"formations"`
}
