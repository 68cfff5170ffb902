package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/vnkhanh/question-bank-server/config"
	"github.com/vnkhanh/question-bank-server/models"
)

type ExportRequest struct {
	Type   string `json:"type"`   // mcq | truefalse | fillblank
	Format string `json:"format"` // csv | xlsx
}

// POST /api/exports (admin only)
func CreateExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payload không hợp lệ"})
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	if req.Format != "csv" && req.Format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Format must be csv or xlsx"})
		return
	}
	switch req.Type {
	case "mcq", "truefalse", "fillblank":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Type must be mcq, truefalse or fillblank"})
		return
	}

	jobID := uuid.New().String()
	job := models.ExportJob{
		JobID:  jobID,
		Type:   req.Type,
		Format: req.Format,
		Status: "queued",
	}
	config.DB.Create(&job)

	go processExportJob(jobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": "queued",
	})
}

// GET /api/exports/:job_id
func GetExport(c *gin.Context) {
	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

// mỗi câu hỏi xuất thành một dòng; MCQ có thêm 4 cột option
func exportRows(jobType string) ([]string, [][]string, error) {
	switch jobType {
	case "mcq":
		var qs []models.Question
		if err := config.DB.Find(&qs).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "category", "question", "option1", "option2", "option3", "option4", "answer"}
		rows := make([][]string, 0, len(qs))
		for _, q := range qs {
			opts := make([]string, 4)
			copy(opts, q.Options)
			rows = append(rows, append([]string{
				fmt.Sprintf("%d", q.ID), q.Category, q.Question,
			}, append(opts, q.Answer)...))
		}
		return header, rows, nil
	case "truefalse":
		var qs []models.TrueFalseQuestion
		if err := config.DB.Find(&qs).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "category", "question", "answer"}
		rows := make([][]string, 0, len(qs))
		for _, q := range qs {
			rows = append(rows, []string{fmt.Sprintf("%d", q.ID), q.Category, q.Question, q.Answer})
		}
		return header, rows, nil
	default:
		var qs []models.FillBlankQuestion
		if err := config.DB.Find(&qs).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "category", "question", "answer"}
		rows := make([][]string, 0, len(qs))
		for _, q := range qs {
			rows = append(rows, []string{fmt.Sprintf("%d", q.ID), q.Category, q.Question, q.Answer})
		}
		return header, rows, nil
	}
}

// xử lý job xuất dữ liệu
func processExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		return
	}
	config.DB.Model(&job).Update("status", "processing")

	outDir := "./exports"
	os.MkdirAll(outDir, 0755)

	filename := fmt.Sprintf("export_%s_%s.%s", job.Type, job.JobID, job.Format)
	outPath := path.Join(outDir, filename)

	header, rows, err := exportRows(job.Type)
	if err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}

	if job.Format == "xlsx" {
		err = writeXLSX(outPath, header, rows)
	} else {
		err = writeCSV(outPath, header, rows)
	}
	if err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}

	fp := outPath
	config.DB.Model(&job).Updates(map[string]interface{}{"status": "done", "file_path": fp})
}

func writeCSV(outPath string, header []string, rows [][]string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeXLSX(outPath string, header []string, rows [][]string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		wb.SetCellValue(sheet, cell, strings.ToUpper(h[:1])+h[1:])
	}
	for r, row := range rows {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			wb.SetCellValue(sheet, cell, v)
		}
	}
	return wb.SaveAs(outPath)
}
