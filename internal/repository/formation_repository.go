package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"formations-backend/internal/domain"
	"formations-backend/internal/repository/models"
	"formations-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

const formationColumns = `id, organization_id, name, type, description, duration_minutes,
	status, file_url, file_name, file_size, created_by, created_at, updated_at`

// FormationDatabaseAdapter implements domain.FormationRepository using sqlx.
type FormationDatabaseAdapter struct {
	db *sqlx.DB
}

// NewFormationDatabaseAdapter creates a new instance of FormationDatabaseAdapter.
func NewFormationDatabaseAdapter(db *sqlx.DB) domain.FormationRepository {
	return &FormationDatabaseAdapter{db: db}
}

func toDomainFormation(m *models.Formation) *domain.Formation {
	if m == nil {
		return nil
	}
	return &domain.Formation{
		ID:              m.ID,
		OrganizationID:  m.OrganizationID,
		Name:            m.Name,
		Type:            domain.FormationType(m.Type),
		Description:     m.Description.String,
		DurationMinutes: m.DurationMinutes,
		Status:          domain.FormationStatus(m.Status),
		FileURL:         m.FileURL.String,
		FileName:        m.FileName.String,
		FileSize:        m.FileSize.Int64,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromDomainFormation(f *domain.Formation) *models.Formation {
	if f == nil {
		return nil
	}
	return &models.Formation{
		ID:              f.ID,
		OrganizationID:  f.OrganizationID,
		Name:            f.Name,
		Type:            string(f.Type),
		Description:     util.StringToNullString(f.Description),
		DurationMinutes: f.DurationMinutes,
		Status:          string(f.Status),
		FileURL:         util.StringToNullString(f.FileURL),
		FileName:        util.StringToNullString(f.FileName),
		FileSize:        sql.NullInt64{Int64: f.FileSize, Valid: f.FileSize > 0},
		CreatedBy:       f.CreatedBy,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// CreateFormation inserts a new formation row.
func (a *FormationDatabaseAdapter) CreateFormation(ctx context.Context, formation *domain.Formation) error {
	model := fromDomainFormation(formation)
	if model == nil {
		return fmt.Errorf("cannot create nil formation")
	}
	model.ID = util.NewULID()
	model.CreatedAt = time.Now()
	model.UpdatedAt = model.CreatedAt

	query := `INSERT INTO formations (
		id, organization_id, name, type, description, duration_minutes,
		status, created_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	executor := GetExecutor(ctx, a.db)
	_, err := executor.ExecContext(ctx, query,
		model.ID,
		model.OrganizationID,
		model.Name,
		model.Type,
		model.Description,
		model.DurationMinutes,
		model.Status,
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create formation: %w", err)
	}

	formation.ID = model.ID
	formation.CreatedAt = model.CreatedAt
	formation.UpdatedAt = model.UpdatedAt
	return nil
}

// GetFormationByID returns the formation or (nil, nil) when absent.
func (a *FormationDatabaseAdapter) GetFormationByID(ctx context.Context, id string) (*domain.Formation, error) {
	var model models.Formation
	query := `SELECT ` + formationColumns + ` FROM formations WHERE id = $1`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get formation by ID %s: %w", id, err)
	}
	return toDomainFormation(&model), nil
}

// ListFormations returns the organization's formations, optionally filtered
// by status, newest first.
func (a *FormationDatabaseAdapter) ListFormations(ctx context.Context, organizationID string, status *domain.FormationStatus) ([]domain.Formation, error) {
	query := `SELECT ` + formationColumns + ` FROM formations WHERE organization_id = $1`
	args := []interface{}{organizationID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	var rows []models.Formation
	executor := GetExecutor(ctx, a.db)
	if err := executor.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list formations: %w", err)
	}

	formations := make([]domain.Formation, 0, len(rows))
	for i := range rows {
		formations = append(formations, *toDomainFormation(&rows[i]))
	}
	return formations, nil
}

// UpdateFormation applies a partial update and returns the updated row.
// Only non-nil fields are written; updated_at always advances.
func (a *FormationDatabaseAdapter) UpdateFormation(ctx context.Context, id string, update domain.FormationUpdate) (*domain.Formation, error) {
	setParts := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if update.Name != nil {
		setParts = append(setParts, "name = "+arg(*update.Name))
	}
	if update.Type != nil {
		setParts = append(setParts, "type = "+arg(string(*update.Type)))
	}
	if update.Description != nil {
		setParts = append(setParts, "description = "+arg(*update.Description))
	}
	if update.DurationMinutes != nil {
		setParts = append(setParts, "duration_minutes = "+arg(*update.DurationMinutes))
	}
	if update.Status != nil {
		setParts = append(setParts, "status = "+arg(string(*update.Status)))
	}
	setParts = append(setParts, "updated_at = "+arg(time.Now()))

	query := `UPDATE formations SET ` + strings.Join(setParts, ", ") +
		` WHERE id = ` + arg(id) + ` RETURNING ` + formationColumns

	var model models.Formation
	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &model, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update formation %s: %w", id, err)
	}
	return toDomainFormation(&model), nil
}

// DeleteFormation hard-deletes the row. Dependent quizzes, questions and
// answers go with it through the schema's cascade rules.
func (a *FormationDatabaseAdapter) DeleteFormation(ctx context.Context, id string) error {
	executor := GetExecutor(ctx, a.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM formations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete formation %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewFormationNotFoundError(id)
	}
	return nil
}

// UpdateFormationFile records the uploaded file's URL and metadata.
func (a *FormationDatabaseAdapter) UpdateFormationFile(ctx context.Context, id, fileURL, fileName string, fileSize int64) error {
	query := `UPDATE formations
		SET file_url = $1, file_name = $2, file_size = $3, updated_at = $4
		WHERE id = $5`

	executor := GetExecutor(ctx, a.db)
	result, err := executor.ExecContext(ctx, query, fileURL, fileName, fileSize, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update formation file %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewFormationNotFoundError(id)
	}
	return nil
}
