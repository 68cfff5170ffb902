package controllers_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/models"
)

func TestSignupInvalidRole(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(r, http.MethodPost, "/auth/signup", map[string]interface{}{
		"name":     "Ann",
		"email":    "a@x.com",
		"password": "secret1",
		"role":     "teacher",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	config.DB.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "Ann", "a@x.com", "secret1", models.RoleStudent)

	rec := doRequest(r, http.MethodPost, "/auth/signup", map[string]interface{}{
		"name":     "Other",
		"email":    "a@x.com",
		"password": "secret1",
		"role":     "student",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	config.DB.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSignupDuplicateInsertTranslatesToConflict(t *testing.T) {
	setupRouter(t)
	createUser(t, "Ann", "a@x.com", "secret1", models.RoleStudent)

	// unique constraint phải map về ErrDuplicatedKey để handler trả 409
	dup := models.User{Name: "Other", Email: "a@x.com", Password: "x", Role: models.RoleStudent}
	err := config.DB.Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestConcurrentDuplicateSignupsNeverReturn500(t *testing.T) {
	r := setupRouter(t)

	payload := map[string]interface{}{
		"name":     "Ann",
		"email":    "a@x.com",
		"password": "secret1",
		"role":     "student",
	}

	codes := make([]int, 8)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = doRequest(r, http.MethodPost, "/auth/signup", payload, "").Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, created)

	var count int64
	config.DB.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSignupLoginFlow(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(r, http.MethodPost, "/auth/signup", map[string]interface{}{
		"name":     "Ann",
		"email":    "a@x.com",
		"password": "secret1",
		"role":     "student",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "student", body["role"])
	assert.Equal(t, "Ann", body["name"])
}

func TestLoginUnknownEmailSameMessageAsWrongPassword(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "Ann", "a@x.com", "secret1", models.RoleStudent)

	recUnknown := doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "nobody@x.com",
		"password": "secret1",
	}, "")
	recWrong := doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "wrong",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, decodeBody(t, recUnknown)["message"], decodeBody(t, recWrong)["message"])
}

func TestLoginFailsClosedWithoutSecret(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "Ann", "a@x.com", "secret1", models.RoleStudent)
	t.Setenv("JWT_SECRET", "")

	rec := doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server configuration error", decodeBody(t, rec)["message"])
}

func TestUpdateUserCannotChangeRoleOrPermissions(t *testing.T) {
	r := setupRouter(t)
	u := createUser(t, "Ann", "a@x.com", "secret1", models.RoleStudent)
	token := tokenFor(t, u)

	rec := doRequest(r, http.MethodPut, "/auth/updateUser", map[string]interface{}{
		"name":            "Annie",
		"email":           "annie@x.com",
		"role":            "admin",
		"canSeeMCQ":       true,
		"canSeeTrueFalse": true,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, config.DB.First(&got, u.ID).Error)
	assert.Equal(t, "Annie", got.Name)
	assert.Equal(t, "annie@x.com", got.Email)
	assert.Equal(t, models.RoleStudent, got.Role)
	assert.False(t, got.CanSeeMCQ)
	assert.False(t, got.CanSeeTrueFalse)
}

func TestUpdateUserRequiresToken(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(r, http.MethodPut, "/auth/updateUser", map[string]interface{}{
		"name":  "Annie",
		"email": "annie@x.com",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserDetailExcludesPassword(t *testing.T) {
	r := setupRouter(t)
	u := createUser(t, "Ann", "a@x.com", "secret1", models.RoleStudent)

	rec := doRequest(r, http.MethodGet, "/auth/userDetail", nil, tokenFor(t, u))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
}
