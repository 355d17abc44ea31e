package domain

import (
	"context"
	"time"
)

// FormationType classifies the training content format.
type FormationType string

const (
	FormationTypeVideo   FormationType = "video"
	FormationTypePPT     FormationType = "ppt"
	FormationTypePDF     FormationType = "pdf"
	FormationTypeArticle FormationType = "article"
)

// FormationStatus is the publication state of a formation.
type FormationStatus string

const (
	FormationStatusDraft    FormationStatus = "draft"
	FormationStatusActive   FormationStatus = "active"
	FormationStatusInactive FormationStatus = "inactive"
)

// Formation is one unit of training content owned by an organization.
// The attached file (if any) lives in object storage; only its URL and
// metadata are kept here.
type Formation struct {
	ID              string
	OrganizationID  string
	Name            string
	Type            FormationType
	Description     string
	DurationMinutes int
	Status          FormationStatus
	FileURL         string
	FileName        string
	FileSize        int64
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Quizzes         []Quiz
}

// FormationUpdate carries a partial update. Nil fields are left untouched;
// updated_at always advances.
type FormationUpdate struct {
	Name            *string
	Type            *FormationType
	Description     *string
	DurationMinutes *int
	Status          *FormationStatus
}

// FormationRepository is the persistence port for formations.
// Fetch methods return (nil, nil) when the row does not exist.
type FormationRepository interface {
	CreateFormation(ctx context.Context, formation *Formation) error
	GetFormationByID(ctx context.Context, id string) (*Formation, error)
	ListFormations(ctx context.Context, organizationID string, status *FormationStatus) ([]Formation, error)
	UpdateFormation(ctx context.Context, id string, update FormationUpdate) (*Formation, error)
	DeleteFormation(ctx context.Context, id string) error
	UpdateFormationFile(ctx context.Context, id, fileURL, fileName string, fileSize int64) error
}
