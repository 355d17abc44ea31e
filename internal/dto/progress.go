package dto

import "time"

// UpsertProgressRequest is the payload for POST /formations/:id/progress.
// The write is full-row: percentage and status are required, the timestamps
// are stored as NULL when absent.
type UpsertProgressRequest struct {
	ProgressPercentage *int       `json:"progress_percentage"`
	Status             string     `json:"status"`
	StartedAt          *time.Time `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
}

// ProgressResponse represents one user progress row.
type ProgressResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	FormationID        string     `json:"formation_id"`
	ProgressPercentage int        `json:"progress_percentage"`
	Status             string     `json:"status"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ProgressListResponse wraps the caller's progress rows.
type ProgressListResponse struct {
	Progress []ProgressResponse `json:"progress"`
}
