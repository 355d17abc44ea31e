package main

import (
	"flag"
	"log"

	"formations-backend/internal/config"
	"formations-backend/internal/database"
	"formations-backend/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	dir := flag.String("dir", "database/migrations", "path to the migrations directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	dsn := cfg.GetDSN()

	if *down {
		if err := database.RollbackLastMigration(dsn, *dir); err != nil {
			l.Fatal("Failed to roll back migration: " + err.Error())
		}
		l.Info("Rolled back the most recent migration")
		return
	}

	if err := database.RunMigrations(dsn, *dir); err != nil {
		l.Fatal("Failed to run migrations: " + err.Error())
	}
	l.Info("Migrations applied successfully")
}
