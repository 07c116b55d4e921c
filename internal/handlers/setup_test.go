package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/config"
	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	"github.com/Mostakim52/khuje-nao/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB() {
	logger.Init("test")
	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}

	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.LostItem{},
		&models.FoundItem{},
		&models.Message{},
	)
}

// fakeMedia is an in-memory media store stub.
type fakeMedia struct {
	uploads []string
	fail    bool
}

func (f *fakeMedia) Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	if f.fail {
		return "", io.ErrUnexpectedEOF
	}
	url := "https://media.test/lost-items/" + filename
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeMedia) Delete(ctx context.Context, fileURL string) error {
	return nil
}

func jsonContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func multipartContext(path string, fields map[string]string, fileField, fileName string) (*gin.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if fileField != "" {
		part, _ := mw.CreateFormFile(fileField, fileName)
		part.Write([]byte("fake image bytes"))
	}
	mw.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", path, &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	return c, w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}
