package database

import (
	"log"

	"gorm.io/gorm"
	"socialstore/models"
	"socialstore/utils"
)

// SeedDatabase populates the database with sample data for local development
func SeedDatabase(db *gorm.DB) error {
	log.Println("Seeding database with sample data...")

	// Check if database is already seeded
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		log.Println("Database already seeded, skipping...")
		return nil
	}

	passwordHash, err := utils.HashPassword("changeme")
	if err != nil {
		return err
	}

	users := []models.User{
		{
			Username: "alice",
			Email:    "alice@example.com",
			Password: passwordHash,
			IsActive: true,
		},
		{
			// Social-only account: no usable password, single provider link.
			// Disconnecting its last link must be refused.
			Username: "bob",
			Email:    "bob@example.com",
			Password: models.UnusablePasswordPrefix,
			IsActive: true,
		},
	}

	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	links := []models.UserSocialAuth{
		{
			UserID:   users[0].ID,
			Provider: "github",
			UID:      "10001",
			ExtraData: models.JSONMap{
				"login":        "alice",
				"access_token": "seed-token-github",
			},
		},
		{
			UserID:   users[0].ID,
			Provider: "google-oauth2",
			UID:      "alice@example.com",
		},
		{
			UserID:   users[1].ID,
			Provider: "github",
			UID:      "10002",
			ExtraData: models.JSONMap{
				"login": "bob",
			},
		},
	}

	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d users and %d social auth links", len(users), len(links))
	return nil
}
