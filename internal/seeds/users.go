package seeds

import (
	"log"
	"time"

	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	"github.com/Mostakim52/khuje-nao/pkg/utils"
)

func GetOrCreateAdminUser() (models.User, error) {
	log.Println("👤 Checking Admin User...")

	email := "admin@khujenao.net"

	var user models.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		log.Printf("   ✅ Admin found: %s", user.Email)
		return user, nil
	}

	hash, err := utils.HashPassword("ChangeMeOnFirstLogin!")
	if err != nil {
		return models.User{}, err
	}

	user = models.User{
		ID:              utils.GenerateID(),
		Name:            "KhujeNao Admin",
		Email:           email,
		PhoneNumber:     "01700000000",
		NSUID:           "0000000",
		Password:        hash,
		Role:            models.RoleAdmin,
		ProfileComplete: true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	log.Printf("   ✅ Admin Created: %s", user.Email)
	return user, nil
}

func SeedDemoUsers() ([]models.User, error) {
	log.Println("👥 Seeding Demo Users...")

	demo := []models.User{
		{Name: "Rafiq Islam", Email: "rafiq@northsouth.edu", PhoneNumber: "01711111111", NSUID: "2011111"},
		{Name: "Sadia Khan", Email: "sadia@northsouth.edu", PhoneNumber: "01722222222", NSUID: "2022222"},
		{Name: "Tanvir Ahmed", Email: "tanvir@northsouth.edu", PhoneNumber: "01733333333", NSUID: "2033333"},
	}

	hash, err := utils.HashPassword("demo1234")
	if err != nil {
		return nil, err
	}

	var users []models.User
	for _, u := range demo {
		var existing models.User
		if err := database.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			users = append(users, existing)
			continue
		}

		u.ID = utils.GenerateID()
		u.Password = hash
		u.ProfileComplete = true
		u.CreatedAt = time.Now()
		u.UpdatedAt = time.Now()
		if err := database.DB.Create(&u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	log.Printf("   ✅ %d demo users ready", len(users))
	return users, nil
}
