package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	"github.com/Mostakim52/khuje-nao/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	subject string
	email   string
	err     error
}

func (s stubVerifier) Verify(string) (string, string, error) {
	return s.subject, s.email, s.err
}

func TestRegister_Success(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	c, w := jsonContext("POST", "/register",
		`{"name":"Rafi","email":"rafi_ah1@northsouth.edu","phone_number":"01712345678","password":"secret123","nsu_id":"2012345"}`)
	Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	assert.NoError(t, database.DB.First(&user, "email = ?", "rafi_ah1@northsouth.edu").Error)
	assert.True(t, user.ProfileComplete)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestRegister_DuplicateEmailAndNSUID(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	body := `{"name":"Rafi","email":"dup_ah2@northsouth.edu","phone_number":"01712345678","password":"secret123","nsu_id":"2023456"}`
	c, w := jsonContext("POST", "/register", body)
	Register(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c2, w2 := jsonContext("POST", "/register", body)
	Register(c2)
	assert.Equal(t, http.StatusBadRequest, w2.Code)

	// Same NSU id under a different email is also a conflict
	c3, w3 := jsonContext("POST", "/register",
		`{"name":"Other","email":"other_ah2@northsouth.edu","phone_number":"01712345679","password":"secret123","nsu_id":"2023456"}`)
	Register(c3)
	assert.Equal(t, http.StatusBadRequest, w3.Code)
}

func TestRegister_InvalidPhoneAndNSUID(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	c, w := jsonContext("POST", "/register",
		`{"name":"Rafi","email":"bad_ah3@northsouth.edu","phone_number":"12345","password":"secret123","nsu_id":"2034567"}`)
	Register(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c2, w2 := jsonContext("POST", "/register",
		`{"name":"Rafi","email":"bad_ah3@northsouth.edu","phone_number":"01712345678","password":"secret123","nsu_id":"20345"}`)
	Register(c2)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestLogin(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	hash, _ := utils.HashPassword("secret123")
	database.DB.Create(&models.User{
		ID: "login_ah4", Name: "Rafi", Email: "login_ah4@northsouth.edu",
		NSUID: "2045678", PhoneNumber: "01712345678", Password: hash,
	})

	c, w := jsonContext("POST", "/login", `{"email":"login_ah4@northsouth.edu","password":"secret123"}`)
	Login(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(w)["token"])

	c2, w2 := jsonContext("POST", "/login", `{"email":"login_ah4@northsouth.edu","password":"wrong"}`)
	Login(c2)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)

	c3, w3 := jsonContext("POST", "/login", `{"email":"ghost_ah4@northsouth.edu","password":"secret123"}`)
	Login(c3)
	assert.Equal(t, http.StatusUnauthorized, w3.Code)
}

func TestTokenLogin_CreatesProfileOnFirstSight(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	Verifier = stubVerifier{subject: "ext_ah5", email: "ext_ah5@northsouth.edu"}
	defer func() { Verifier = jwtVerifier{} }()

	c, w := jsonContext("POST", "/token-login", `{"id_token":"whatever"}`)
	TokenLogin(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, database.DB.First(&user, "external_uid = ?", "ext_ah5").Error)
	assert.False(t, user.ProfileComplete)

	// Second login reuses the same profile
	c2, w2 := jsonContext("POST", "/token-login", `{"id_token":"whatever"}`)
	TokenLogin(c2)
	assert.Equal(t, http.StatusOK, w2.Code)

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", "ext_ah5@northsouth.edu").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestTokenLogin_RejectsBadCredential(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	Verifier = stubVerifier{err: errors.New("signature mismatch")}
	defer func() { Verifier = jwtVerifier{} }()

	c, w := jsonContext("POST", "/token-login", `{"id_token":"junk"}`)
	TokenLogin(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenLogin_LinksExistingEmailAccount(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "link_ah6", Email: "link_ah6@northsouth.edu"})

	Verifier = stubVerifier{subject: "ext_ah6", email: "link_ah6@northsouth.edu"}
	defer func() { Verifier = jwtVerifier{} }()

	c, w := jsonContext("POST", "/token-login", `{"id_token":"whatever"}`)
	TokenLogin(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	database.DB.First(&user, "id = ?", "link_ah6")
	assert.Equal(t, "ext_ah6", user.ExternalUID)
}

func TestGetAndSaveProfile(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "prof_ah7", Email: "prof_ah7@northsouth.edu"})

	c, w := jsonContext("GET", "/profile", "")
	c.Set("userId", "prof_ah7")
	GetProfile(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c2, w2 := jsonContext("POST", "/profile", `{"name":"Rafi","nsu_id":"2056789","phone":"01812345678"}`)
	c2.Set("userId", "prof_ah7")
	SaveProfile(c2)
	assert.Equal(t, http.StatusOK, w2.Code)

	var user models.User
	database.DB.First(&user, "id = ?", "prof_ah7")
	assert.Equal(t, "2056789", user.NSUID)
	assert.True(t, user.ProfileComplete)

	// Unknown user is a 404
	c3, w3 := jsonContext("POST", "/profile", `{"name":"Rafi","nsu_id":"2056789","phone":"01812345678"}`)
	c3.Set("userId", "ghost_ah7")
	SaveProfile(c3)
	assert.Equal(t, http.StatusNotFound, w3.Code)
}

func TestOTPFlow(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { database.Redis = nil }()

	email := "otp_ah9@northsouth.edu"

	request := func() *httptest.ResponseRecorder {
		c, w := jsonContext("POST", "/request-otp", `{"email":"`+email+`"}`)
		RequestOTP(c)
		return w
	}

	assert.Equal(t, http.StatusOK, request().Code)

	code, err := mr.Get("otp:" + email)
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	// Pin the code so the verify paths are deterministic
	mr.Set("otp:"+email, "654321")

	c, w := jsonContext("POST", "/verify-otp", `{"email":"`+email+`","code":"000000"}`)
	VerifyOTP(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c2, w2 := jsonContext("POST", "/verify-otp", `{"email":"`+email+`","code":"654321"}`)
	VerifyOTP(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.False(t, mr.Exists("otp:"+email))

	// Verified codes are consumed; replays fail
	c3, w3 := jsonContext("POST", "/verify-otp", `{"email":"`+email+`","code":"654321"}`)
	VerifyOTP(c3)
	assert.Equal(t, http.StatusBadRequest, w3.Code)

	// Per-email issue limit
	assert.Equal(t, http.StatusOK, request().Code)
	assert.Equal(t, http.StatusOK, request().Code)
	assert.Equal(t, http.StatusTooManyRequests, request().Code)
}

func TestOTP_UnavailableWithoutStore(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	c, w := jsonContext("POST", "/request-otp", `{"email":"otp_ah8@northsouth.edu"}`)
	RequestOTP(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	c2, w2 := jsonContext("POST", "/verify-otp", `{"email":"otp_ah8@northsouth.edu","code":"123456"}`)
	VerifyOTP(c2)
	assert.Equal(t, http.StatusServiceUnavailable, w2.Code)
}
