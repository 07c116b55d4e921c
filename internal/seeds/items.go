package seeds

import (
	"log"
	"time"

	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	"github.com/Mostakim52/khuje-nao/pkg/utils"
)

func SeedItems(users []models.User) error {
	if len(users) == 0 {
		log.Println("📦 No users to attach items to, skipping item seed")
		return nil
	}

	log.Println("📦 Seeding Items...")

	lost := []models.LostItem{
		{Description: "Black JBL headphones, left ear pad worn", Location: "Library 3rd floor", IsApproved: true},
		{Description: "Blue NSU ID card holder with keys", Location: "Cafeteria", IsApproved: true},
		{Description: "Scientific calculator fx-991EX", Location: "SAC 510", IsApproved: false},
	}
	for i, item := range lost {
		item.ID = utils.GenerateID()
		item.ReportedBy = users[i%len(users)].ID
		item.CreatedAt = time.Now().Add(-time.Duration(i) * time.Hour)
		if err := database.DB.Create(&item).Error; err != nil {
			return err
		}
	}

	found := []models.FoundItem{
		{Description: "Grey umbrella", Location: "Gate 1 security desk"},
		{Description: "USB-C charger", Location: "Lab 601"},
	}
	for i, item := range found {
		item.ID = utils.GenerateID()
		item.FoundAt = time.Now().Add(-time.Duration(i) * time.Hour)
		if err := database.DB.Create(&item).Error; err != nil {
			return err
		}
	}

	log.Printf("   ✅ %d lost + %d found items seeded", len(lost), len(found))
	return nil
}

func SeedMessages(users []models.User) error {
	if len(users) < 2 {
		log.Println("💬 Not enough users for message seed, skipping")
		return nil
	}

	log.Println("💬 Seeding Messages...")

	a, b := users[0], users[1]
	msgs := []models.Message{
		{AuthorID: a.ID, ReceiverID: b.ID, Text: "Hi, I think I found your ID card holder"},
		{AuthorID: b.ID, ReceiverID: a.ID, Text: "Really? Blue one with keys?"},
		{AuthorID: a.ID, ReceiverID: b.ID, Text: "Yes! I can drop it at the library desk"},
	}
	base := time.Now().Add(-30 * time.Minute)
	for i, m := range msgs {
		m.ID = utils.GenerateID()
		m.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := database.DB.Create(&m).Error; err != nil {
			return err
		}
	}

	log.Printf("   ✅ %d messages seeded", len(msgs))
	return nil
}
