package main

import (
	"log"

	"github.com/Mostakim52/khuje-nao/internal/config"
	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	"github.com/Mostakim52/khuje-nao/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("🔄 Running migrations (just in case)...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.LostItem{},
		&models.FoundItem{},
		&models.Message{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	if _, err := seeds.GetOrCreateAdminUser(); err != nil {
		log.Fatalf("❌ Failed to ensure admin user: %v", err)
	}

	users, err := seeds.SeedDemoUsers()
	if err != nil {
		log.Fatalf("❌ Failed to seed users: %v", err)
	}

	if err := seeds.SeedItems(users); err != nil {
		log.Fatalf("❌ Failed to seed items: %v", err)
	}

	if err := seeds.SeedMessages(users); err != nil {
		log.Fatalf("❌ Failed to seed messages: %v", err)
	}

	log.Println("✅ Seeding complete")
}
