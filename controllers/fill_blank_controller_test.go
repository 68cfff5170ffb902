package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/models"
)

func fbPayload() map[string]interface{} {
	return map[string]interface{}{
		"category": "Anatomy",
		"question": "The largest bone in the body is the ____.",
		"answer":   "femur",
	}
}

func TestAddFillBlankRequiresAllFields(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	p := fbPayload()
	p["answer"] = ""
	rec := doRequest(r, http.MethodPost, "/api/fillblank/add", p, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(r, http.MethodPost, "/api/fillblank/add", fbPayload(), token)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var count int64
	config.DB.Model(&models.FillBlankQuestion{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBulkAddFillBlankAtomicRejection(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	bad := fbPayload()
	bad["question"] = ""
	rec := doRequest(r, http.MethodPost, "/api/fillblank/bulk-add", map[string]interface{}{
		"questions": []map[string]interface{}{fbPayload(), bad},
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	config.DB.Model(&models.FillBlankQuestion{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestFillBlankUpdateDeleteNotFound(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	rec := doRequest(r, http.MethodPut, "/api/fillblank/9999", fbPayload(), token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(r, http.MethodDelete, "/api/fillblank/9999", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// id không phải số → 404
	rec = doRequest(r, http.MethodPut, "/api/fillblank/abc", fbPayload(), token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(r, http.MethodDelete, "/api/fillblank/abc", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFillBlankCRUDFlow(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	rec := doRequest(r, http.MethodPost, "/api/fillblank/add", fbPayload(), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var q models.FillBlankQuestion
	require.NoError(t, config.DB.First(&q).Error)

	p := fbPayload()
	p["answer"] = "tibia"
	rec = doRequest(r, http.MethodPut, fmt.Sprintf("/api/fillblank/%d", q.ID), p, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.FillBlankQuestion
	require.NoError(t, config.DB.First(&got, q.ID).Error)
	assert.Equal(t, "tibia", got.Answer)

	rec = doRequest(r, http.MethodGet, "/api/fillblank", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["questions"].([]interface{}), 1)

	rec = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/fillblank/%d", q.ID), nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	config.DB.Model(&models.FillBlankQuestion{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
