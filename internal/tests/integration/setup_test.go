package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/config"
	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	"github.com/Mostakim52/khuje-nao/internal/routes"
	"github.com/Mostakim52/khuje-nao/pkg/logger"
	"github.com/Mostakim52/khuje-nao/pkg/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	logger.Init("test")
	config.AppConfig = &config.Config{
		JWTSecret: "test_secret_key_12345",
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.LostItem{},
		&models.FoundItem{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	database.DB = db
	return db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterItemRoutes(r)
	routes.RegisterMessageRoutes(r)
	routes.RegisterAuthRoutes(r)
	return r
}

// createTestUser inserts a user directly and returns a valid token for them.
func createTestUser(t *testing.T, id string, role models.Role) string {
	email := id + "@northsouth.edu"
	user := models.User{
		ID:              id,
		Name:            "Test " + id,
		Email:           email,
		NSUID:           "2099999",
		PhoneNumber:     "01912345678",
		ProfileComplete: true,
		Role:            role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

func performRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
