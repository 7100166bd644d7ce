package main

import (
	"log"

	"taskfeed-be/internal/config"
	"taskfeed-be/internal/model"
	"taskfeed-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Auto Migrate in dependency order
	for _, m := range model.All() {
		if err := db.AutoMigrate(m); err != nil {
			log.Fatalf("Error: Failed to migrate %T: %v", m, err)
		}
		log.Printf("Migrated %T", m)
	}

	log.Println("Migration completed successfully.")
}
