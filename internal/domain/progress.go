package domain

import (
	"context"
	"time"
)

// ProgressStatus is where a user stands on a formation.
type ProgressStatus string

const (
	ProgressStatusNotStarted ProgressStatus = "not_started"
	ProgressStatusInProgress ProgressStatus = "in_progress"
	ProgressStatusCompleted  ProgressStatus = "completed"
)

// UserProgress is the single per (user, formation) progress row.
// Writes are full-row upserts; last write wins.
type UserProgress struct {
	ID                 string
	UserID             string
	FormationID        string
	ProgressPercentage int
	Status             ProgressStatus
	StartedAt          *time.Time
	CompletedAt        *time.Time
	UpdatedAt          time.Time
}

// ProgressRepository is the persistence port for user progress.
type ProgressRepository interface {
	// UpsertProgress inserts or fully replaces the row keyed on
	// (user_id, formation_id).
	UpsertProgress(ctx context.Context, progress *UserProgress) error
	GetProgressByUserAndFormation(ctx context.Context, userID, formationID string) (*UserProgress, error)
	ListProgressByUser(ctx context.Context, userID string) ([]UserProgress, error)
}
