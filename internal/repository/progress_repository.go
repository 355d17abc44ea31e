package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"formations-backend/internal/domain"
	"formations-backend/internal/repository/models"
	"formations-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxProgressRepository implements domain.ProgressRepository using sqlx.
type sqlxProgressRepository struct {
	db *sqlx.DB
}

// NewSQLXProgressRepository creates a new instance of sqlxProgressRepository.
func NewSQLXProgressRepository(db *sqlx.DB) domain.ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

func toDomainProgress(m *models.UserProgress) *domain.UserProgress {
	if m == nil {
		return nil
	}
	return &domain.UserProgress{
		ID:                 m.ID,
		UserID:             m.UserID,
		FormationID:        m.FormationID,
		ProgressPercentage: m.ProgressPercentage,
		Status:             domain.ProgressStatus(m.Status),
		StartedAt:          util.NullTimeToTimePtr(m.StartedAt),
		CompletedAt:        util.NullTimeToTimePtr(m.CompletedAt),
		UpdatedAt:          m.UpdatedAt,
	}
}

// UpsertProgress inserts or fully replaces the (user_id, formation_id) row.
// Last write wins; omitted timestamps overwrite with NULL.
func (r *sqlxProgressRepository) UpsertProgress(ctx context.Context, progress *domain.UserProgress) error {
	if progress == nil {
		return fmt.Errorf("cannot upsert nil progress")
	}
	if progress.ID == "" {
		progress.ID = util.NewULID()
	}
	progress.UpdatedAt = time.Now()

	query := `INSERT INTO user_progress (
		id, user_id, formation_id, progress_percentage, status,
		started_at, completed_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id, formation_id) DO UPDATE SET
		progress_percentage = EXCLUDED.progress_percentage,
		status = EXCLUDED.status,
		started_at = EXCLUDED.started_at,
		completed_at = EXCLUDED.completed_at,
		updated_at = EXCLUDED.updated_at`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		progress.ID,
		progress.UserID,
		progress.FormationID,
		progress.ProgressPercentage,
		string(progress.Status),
		util.TimePtrToNullTime(progress.StartedAt),
		util.TimePtrToNullTime(progress.CompletedAt),
		progress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user progress: %w", err)
	}
	return nil
}

// GetProgressByUserAndFormation returns the row or (nil, nil) when absent.
func (r *sqlxProgressRepository) GetProgressByUserAndFormation(ctx context.Context, userID, formationID string) (*domain.UserProgress, error) {
	var model models.UserProgress
	query := `SELECT id, user_id, formation_id, progress_percentage, status,
		started_at, completed_at, updated_at
	FROM user_progress WHERE user_id = $1 AND formation_id = $2`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &model, query, userID, formationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}
	return toDomainProgress(&model), nil
}

// ListProgressByUser returns all of a user's progress rows, most recently
// updated first.
func (r *sqlxProgressRepository) ListProgressByUser(ctx context.Context, userID string) ([]domain.UserProgress, error) {
	var rows []models.UserProgress
	query := `SELECT id, user_id, formation_id, progress_percentage, status,
		started_at, completed_at, updated_at
	FROM user_progress WHERE user_id = $1 ORDER BY updated_at DESC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user progress: %w", err)
	}

	progress := make([]domain.UserProgress, 0, len(rows))
	for i := range rows {
		progress = append(progress, *toDomainProgress(&rows[i]))
	}
	return progress, nil
}
