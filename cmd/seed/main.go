package main

import (
	"log"
	"time"

	"taskfeed-be/internal/config"
	"taskfeed-be/internal/model"
	"taskfeed-be/internal/pkg/serverutils"
	"taskfeed-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// Fixed ids so tokens printed on one run keep working after a reseed.
var devUsers = []model.User{
	{Id: uuid.MustParse("00000000-0000-4000-8000-000000000001"), Username: "alice", DisplayName: "Alice"},
	{Id: uuid.MustParse("00000000-0000-4000-8000-000000000002"), Username: "bob", DisplayName: "Bob"},
	{Id: uuid.MustParse("00000000-0000-4000-8000-000000000003"), Username: "carol", DisplayName: "Carol"},
	{Id: uuid.MustParse("00000000-0000-4000-8000-000000000004"), Username: "dave"},
}

func main() {
	cfg := config.Load()

	if cfg.App.IsProduction() {
		log.Fatal("Error: refusing to seed a production database")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding development users\n")

	for i := range devUsers {
		u := devUsers[i]
		u.CreatedAt = time.Now().UTC()
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&u)
		if res.Error != nil {
			color.Red("Failed to seed %s: %v", u.Username, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			color.Yellow("User %s already exists, skipping", u.Username)
		} else {
			color.Green("Created user %s (%s)", u.Username, u.Id)
		}

		token, err := serverutils.IssueToken(cfg.App.JwtSecret, u.Id, 30*24*time.Hour)
		if err != nil {
			color.Red("Failed to sign token for %s: %v", u.Username, err)
			continue
		}
		color.White("  Authorization: Bearer %s\n", token)
	}

	color.Cyan("Seeding completed!")
}
