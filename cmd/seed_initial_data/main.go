package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"formations-backend/internal/config"
	"formations-backend/internal/database"
	"formations-backend/internal/logger"
	"formations-backend/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Seeds a demo organization with an admin profile, one published formation
// and a quiz, so a fresh environment has something to click through.
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := seedDemoData(ctx, db, log); err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Initial data seeding process completed.")
}

func seedDemoData(ctx context.Context, db *sqlx.DB, log *zap.Logger) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				log.Error("Failed to commit transaction", zap.Error(cErr))
				err = cErr
			}
		}
	}()

	now := time.Now().UTC()

	orgID := util.NewULID()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO organizations (id, name, created_at) VALUES ($1, $2, $3)`,
		orgID, "Demo Organization", now); err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	log.Info("Created organization", zap.String("id", orgID))

	profileID := util.NewULID()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (id, organization_id, email, full_name, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		profileID, orgID, "admin@demo.example", "Demo Admin", "admin", now); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO organization_members (id, organization_id, user_id, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		util.NewULID(), orgID, profileID, "admin", now); err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	log.Info("Created admin profile", zap.String("id", profileID))

	formationID := util.NewULID()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO formations (id, organization_id, name, description, type, status, duration_minutes, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		formationID, orgID, "Workplace Safety Basics",
		"An introduction to workplace safety policies and procedures.",
		"article", "active", 30, profileID, now); err != nil {
		return fmt.Errorf("failed to insert formation: %w", err)
	}
	log.Info("Created formation", zap.String("id", formationID))

	quizID := util.NewULID()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO quizzes (id, formation_id, title, passing_score, max_attempts, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		quizID, formationID, "Safety Basics Check", 70, 3, now); err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	type seedAnswer struct {
		text    string
		correct bool
	}
	questions := []struct {
		text    string
		qType   string
		answers []seedAnswer
	}{
		{
			text:  "Which number should you call first in case of a fire?",
			qType: "multiple_choice",
			answers: []seedAnswer{
				{"The emergency services", true},
				{"Your manager", false},
				{"The front desk", false},
			},
		},
		{
			text:  "Fire exits may be used for storage when space is limited.",
			qType: "true_false",
			answers: []seedAnswer{
				{"True", false},
				{"False", true},
			},
		},
	}

	for i, q := range questions {
		questionID := util.NewULID()
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO quiz_questions (id, quiz_id, question_text, question_type, points, order_index, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			questionID, quizID, q.text, q.qType, 1, i, now); err != nil {
			return fmt.Errorf("failed to insert question %d: %w", i, err)
		}
		for j, a := range q.answers {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO quiz_answers (id, question_id, answer_text, is_correct, order_index, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				util.NewULID(), questionID, a.text, a.correct, j, now); err != nil {
				return fmt.Errorf("failed to insert answer for question %d: %w", i, err)
			}
		}
	}
	log.Info("Created quiz with questions", zap.String("id", quizID), zap.Int("questions", len(questions)))

	return nil
}
