package models

import (
	"database/sql"
	"time"
)

// UserProgress is the database row for the user_progress table.
// (user_id, formation_id) carries a unique constraint; writes are upserts.
type UserProgress struct {
	ID                 string       `db:"id"`
	UserID             string       `db:"user_id"`
	FormationID        string       `db:"formation_id"`
	ProgressPercentage int          `db:"progress_percentage"`
	Status             string       `db:"status"`
	StartedAt          sql.NullTime `db:"started_at"`
	CompletedAt        sql.NullTime `db:"completed_at"`
	UpdatedAt          time.Time    `db:"updated_at"`
}
