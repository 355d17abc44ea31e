package models

import (
	"database/sql"
	"time"
)

// Formation is the database row for the formations table.
type Formation struct {
	ID              string         `db:"id"`
	OrganizationID  string         `db:"organization_id"`
	Name            string         `db:"name"`
	Type            string         `db:"type"`
	Description     sql.NullString `db:"description"`
	DurationMinutes int            `db:"duration_minutes"`
	Status          string         `db:"status"`
	FileURL         sql.NullString `db:"file_url"`
	FileName        sql.NullString `db:"file_name"`
	FileSize        sql.NullInt64  `db:"file_size"`
	CreatedBy       string         `db:"created_by"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
