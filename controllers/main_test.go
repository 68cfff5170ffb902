package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/middleware"
	"github.com/vnkhanh/question-bank-server/models"
	"github.com/vnkhanh/question-bank-server/routes"
	"github.com/vnkhanh/question-bank-server/utils"
)

// setupRouter dựng router thật trên sqlite in-memory, mỗi test một DB riêng.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// :memory: là một DB riêng cho mỗi connection → giữ đúng 1 connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.TrueFalseQuestion{},
		&models.FillBlankQuestion{},
		&models.ExportJob{},
	))
	config.DB = db

	// limiter rộng để các test không dẫm lên nhau
	middleware.AuthLimiter = middleware.NewIPRateLimiter(100000, 100000, time.Minute)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, name, email, password, role string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := models.User{Name: name, Email: email, Password: hash, Role: role}
	require.NoError(t, config.DB.Create(&u).Error)
	return u
}

func tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(utils.JWTClaims{
		UserID:          fmt.Sprintf("%d", u.ID),
		Email:           u.Email,
		Role:            u.Role,
		CanSeeMCQ:       u.CanSeeMCQ,
		CanSeeTrueFalse: u.CanSeeTrueFalse,
		CanSeeFillBlank: u.CanSeeFillBlank,
	})
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	return tokenFor(t, createUser(t, "Admin", "admin@example.com", "admin123", models.RoleAdmin))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
