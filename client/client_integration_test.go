package client_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnkhanh/question-bank-server/client"
	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/middleware"
	"github.com/vnkhanh/question-bank-server/models"
	"github.com/vnkhanh/question-bank-server/routes"
)

// startServer dựng server thật (gin + sqlite in-memory) cho client test end-to-end
func startServer(t *testing.T) *client.Client {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
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
	middleware.AuthLimiter = middleware.NewIPRateLimiter(100000, 100000, time.Minute)

	r := gin.New()
	routes.SetupRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return client.New(srv.URL)
}

func TestEndToEndAdminFlow(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	require.NoError(t, c.Signup(ctx, client.SignupInput{
		Name:     "Admin",
		Email:    "admin@x.com",
		Password: "admin123",
		Role:     "admin",
	}))

	sess, err := c.Login(ctx, "admin@x.com", "admin123")
	require.NoError(t, err)
	require.True(t, sess.IsAdmin())
	assert.NotEmpty(t, sess.Token)

	require.NoError(t, c.BulkAddTrueFalse(ctx, []client.TrueFalseInput{
		{Category: "Cardiology", Question: "Q1", Answer: "True"},
		{Category: "cardiology", Question: "Q2", Answer: "False"},
		{Category: "Neurology", Question: "Q3", Answer: "Partly True"},
	}))

	all, err := c.TrueFalseList(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cardio, err := c.TrueFalseByCategory(ctx, "CARDIOLOGY")
	require.NoError(t, err)
	assert.Len(t, cardio, 2)

	// bulk-update báo kết quả từng phần tử; id không tồn tại không làm hỏng phần còn lại
	results, err := c.BulkUpdateTrueFalse(ctx, []client.TrueFalseUpdate{
		{ID: all[0].ID, TrueFalseInput: client.TrueFalseInput{Category: "Cardiology", Question: "Q1 edited", Answer: "False"}},
		{ID: 9999, TrueFalseInput: client.TrueFalseInput{Category: "Ghost", Question: "Qx", Answer: "True"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)

	// cache đã invalidate → đọc lại thấy bản sửa
	all, err = c.TrueFalseList(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Q1 edited", all[0].Question)
}

func TestEndToEndStudentForbidden(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	require.NoError(t, c.Signup(ctx, client.SignupInput{
		Name:      "Student",
		Email:     "s@x.com",
		Password:  "secret1",
		Role:      "student",
		CanSeeMCQ: true,
	}))
	sess, err := c.Login(ctx, "s@x.com", "secret1")
	require.NoError(t, err)
	assert.False(t, sess.IsAdmin())
	assert.True(t, sess.CanSeeMCQ)

	err = c.AddMCQ(ctx, client.MCQInput{
		Category: "Geo",
		Question: "Capital of France?",
		Options:  []string{"Paris", "London", "Berlin", "Madrid"},
		Answer:   "Paris",
	})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestEndToEndSelfProfile(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	require.NoError(t, c.Signup(ctx, client.SignupInput{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret1",
		Role:     "student",
	}))
	_, err := c.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	u, err := c.UserDetail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)

	require.NoError(t, c.UpdateUser(ctx, "Annie", "annie@x.com"))

	// tag User bị invalidate → refetch thấy hồ sơ mới, role giữ nguyên
	u, err = c.UserDetail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Annie", u.Name)
	assert.Equal(t, "annie@x.com", u.Email)
	assert.Equal(t, "student", u.Role)
}
