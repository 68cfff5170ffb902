package controllers_test

import (
	"encoding/csv"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/models"
)

// waitForJob chờ job chuyển khỏi queued/processing (job chạy nền trong goroutine)
func waitForJob(t *testing.T, jobID string) models.ExportJob {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var job models.ExportJob
		require.NoError(t, config.DB.First(&job, "job_id = ?", jobID).Error)
		if job.Status == "done" || job.Status == "failed" {
			return job
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("export job did not finish in time")
	return models.ExportJob{}
}

func TestCreateExportValidatesTypeAndFormat(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	rec := doRequest(r, http.MethodPost, "/api/exports", map[string]string{"type": "essay"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(r, http.MethodPost, "/api/exports", map[string]string{"type": "mcq", "format": "pdf"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportQuestionsCSV(t *testing.T) {
	r := setupRouter(t)
	t.Chdir(t.TempDir())
	token := adminToken(t)
	seedMCQ(t, "Geo")
	seedMCQ(t, "History")

	rec := doRequest(r, http.MethodPost, "/api/exports", map[string]string{"type": "mcq", "format": "csv"}, token)
	require.Equal(t, http.StatusAccepted, rec.Code)
	jobID := decodeBody(t, rec)["job_id"].(string)

	job := waitForJob(t, jobID)
	require.Equal(t, "done", job.Status)
	require.NotNil(t, job.FilePath)

	f, err := os.Open(*job.FilePath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 câu hỏi
	assert.Equal(t, []string{"id", "category", "question", "option1", "option2", "option3", "option4", "answer"}, rows[0])
}

func TestExportTrueFalseXLSX(t *testing.T) {
	r := setupRouter(t)
	t.Chdir(t.TempDir())
	token := adminToken(t)

	q := models.TrueFalseQuestion{Category: "Cardiology", Question: "Seed", Answer: models.AnswerTrue}
	require.NoError(t, config.DB.Create(&q).Error)

	rec := doRequest(r, http.MethodPost, "/api/exports", map[string]string{"type": "truefalse", "format": "xlsx"}, token)
	require.Equal(t, http.StatusAccepted, rec.Code)
	jobID := decodeBody(t, rec)["job_id"].(string)

	job := waitForJob(t, jobID)
	require.Equal(t, "done", job.Status)
	require.NotNil(t, job.FilePath)

	// file download qua API khi job xong
	rec = doRequest(r, http.MethodGet, "/api/exports/"+jobID, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, rec.Body.Len())
}

func TestGetExportUnknownJob(t *testing.T) {
	r := setupRouter(t)
	token := adminToken(t)

	rec := doRequest(r, http.MethodGet, "/api/exports/does-not-exist", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateExportRequiresAdmin(t *testing.T) {
	r := setupRouter(t)
	student := createUser(t, "Student", "s@x.com", "secret1", models.RoleStudent)

	rec := doRequest(r, http.MethodPost, "/api/exports", map[string]string{"type": "mcq"}, tokenFor(t, student))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
